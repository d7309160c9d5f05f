package domain

// WebSocketMessage is the envelope for every frame exchanged with clients.
type WebSocketMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event names. A sendMessage or deleteMessage request answers with a
// getChatById push so every recipient converges on the same chat view.
const (
	EventGetChatsByUserID = "getChatsByUserId"
	EventGetChatByID      = "getChatById"
	EventSendMessage      = "sendMessage"
	EventDeleteMessage    = "deleteMessage"
	EventError            = "error_message"
)

// GetChatsByUserIDPayload is the payload of a 'getChatsByUserId' request.
type GetChatsByUserIDPayload struct {
	UserID string `json:"userId"`
}

// GetChatByIDPayload is the payload of a 'getChatById' request.
type GetChatByIDPayload struct {
	ChatID string `json:"chatId"`
}

// SendMessagePayload is the payload of a 'sendMessage' request. Messages
// holds one record for an ordinary send or a reply, several for a forward.
// ParticipantIDs is supplied by the client and drives the fan-out.
type SendMessagePayload struct {
	ChatID         string          `json:"chatId"`
	Messages       []MessageRecord `json:"messages"`
	ParticipantIDs []string        `json:"participantIds"`
}

// DeleteMessagePayload is the payload of a 'deleteMessage' request.
type DeleteMessagePayload struct {
	ChatID         string   `json:"chatId"`
	MessageID      string   `json:"messageId"`
	ParticipantIDs []string `json:"participantIds"`
}

// ChatResponse is the tagged result sent back for every chat operation.
// Build it only through OkChat, OkChats and Errf so the success flag and the
// populated fields can never disagree.
type ChatResponse struct {
	Success   bool    `json:"success"`
	ChatData  *Chat   `json:"chatData,omitempty"`
	ChatsData []*Chat `json:"chatsData,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// OkChat wraps a single resolved chat.
func OkChat(chat *Chat) ChatResponse {
	return ChatResponse{Success: true, ChatData: chat}
}

// OkChats wraps a resolved chat list.
func OkChats(chats []*Chat) ChatResponse {
	return ChatResponse{Success: true, ChatsData: chats}
}

// Errf wraps a failure message. Failures carry no chat data.
func Errf(err error) ChatResponse {
	return ChatResponse{Success: false, Message: err.Error()}
}
