package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// MessagingHandler handles conversation and message HTTP requests
type MessagingHandler struct {
	messagingService *service.MessagingService
}

// NewMessagingHandler creates a new MessagingHandler
func NewMessagingHandler(messagingService *service.MessagingService) *MessagingHandler {
	return &MessagingHandler{messagingService: messagingService}
}

// CreateConversationRequest represents the create conversation request body
type CreateConversationRequest struct {
	Name    string `json:"name"`
	IsGroup *bool  `json:"isGroup,omitempty"`
}

// SendMessageRequest represents the send message request body
type SendMessageRequest struct {
	Sender       string `json:"sender"`
	Content      string `json:"content"`
	MessageType  string `json:"messageType"`
	SenderUserID *int32 `json:"senderUserId,omitempty"`
}

// ConversationResponse represents a conversation in API responses
type ConversationResponse struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	IsGroup   bool   `json:"isGroup"`
	CreatedAt string `json:"createdAt"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID             int32   `json:"id"`
	ConversationID int32   `json:"conversationId"`
	Sender         string  `json:"sender"`
	Content        string  `json:"content"`
	Timestamp      string  `json:"timestamp"`
	FileURL        *string `json:"fileUrl,omitempty"`
	MessageType    string  `json:"messageType"`
	SenderUserID   *int32  `json:"senderUserId,omitempty"`
}

// UploadResponse is returned after an attachment upload
type UploadResponse struct {
	FileURL string          `json:"fileUrl"`
	Message MessageResponse `json:"message"`
}

// GetConversations handles GET /api/v1/conversations
func (h *MessagingHandler) GetConversations(c echo.Context) error {
	var isGroup *bool
	if raw := c.QueryParam("isGroup"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return NewFieldError(c, "isGroup", "Must be true or false")
		}
		isGroup = &v
	}

	conversations, err := h.messagingService.GetConversations(isGroup)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get conversations")
		return NewInternalError(c, "Failed to get conversations")
	}

	response := make([]ConversationResponse, len(conversations))
	for i, conv := range conversations {
		response[i] = toConversationResponse(conv)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateConversation handles POST /api/v1/conversations
func (h *MessagingHandler) CreateConversation(c echo.Context) error {
	var req CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	conv, err := h.messagingService.CreateConversation(req.Name, req.IsGroup)
	if err != nil {
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewFieldError(c, "name", "Name must be 255 characters or less")
		}
		log.Error().Err(err).Msg("Failed to create conversation")
		return NewInternalError(c, "Failed to create conversation")
	}
	return c.JSON(http.StatusCreated, toConversationResponse(conv))
}

// GetMessages handles GET /api/v1/conversations/:id/messages
func (h *MessagingHandler) GetMessages(c echo.Context) error {
	convID, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid conversation ID")
	}

	messages, err := h.messagingService.GetMessages(c.Request().Context(), convID)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			return NewNotFoundError(c, "Conversation not found")
		}
		log.Error().Err(err).Int32("conversation_id", convID).Msg("Failed to get messages")
		return NewInternalError(c, "Failed to get messages")
	}

	response := make([]MessageResponse, len(messages))
	for i, m := range messages {
		response[i] = toMessageResponse(m)
	}
	return c.JSON(http.StatusOK, response)
}

// SendMessage handles POST /api/v1/conversations/:id/messages
func (h *MessagingHandler) SendMessage(c echo.Context) error {
	convID, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid conversation ID")
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	msg, err := h.messagingService.SendMessage(convID, service.SendMessageInput{
		Sender:       req.Sender,
		Content:      req.Content,
		MessageType:  domain.MessageType(req.MessageType),
		SenderUserID: req.SenderUserID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			return NewNotFoundError(c, "Conversation not found")
		}
		if errors.Is(err, domain.ErrMessageTypeInvalid) {
			return NewFieldError(c, "messageType", "Must be one of: text, image, video, file")
		}
		log.Error().Err(err).Int32("conversation_id", convID).Msg("Failed to send message")
		return NewInternalError(c, "Failed to send message")
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

// UploadFile godoc
// @Summary Upload a chat attachment
// @Tags messaging
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Conversation ID"
// @Param file formData file true "Attachment"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /conversations/{id}/upload [post]
func (h *MessagingHandler) UploadFile(c echo.Context) error {
	convID, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid conversation ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	var senderUserID *int32
	if raw := c.FormValue("senderUserId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 32); err == nil {
			v := int32(id)
			senderUserID = &v
		}
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	msg, err := h.messagingService.UploadFile(c.Request().Context(), convID, service.UploadInput{
		Filename:     file.Filename,
		ContentType:  file.Header.Get(echo.HeaderContentType),
		Size:         file.Size,
		Data:         src,
		Sender:       c.FormValue("sender"),
		MessageType:  domain.MessageType(c.FormValue("type")),
		SenderUserID: senderUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConversationNotFound):
			return NewNotFoundError(c, "Conversation not found")
		case errors.Is(err, domain.ErrFileRequired):
			return NewFieldError(c, "file", "File is required")
		case errors.Is(err, domain.ErrMessageTypeInvalid):
			return NewFieldError(c, "type", "Must be one of: text, image, video, file")
		case errors.Is(err, service.ErrAttachmentTooLarge):
			return NewPayloadTooLargeError(c, "File too large. Maximum size is 25MB")
		case errors.Is(err, service.ErrFileStorageUnavailable):
			return NewServiceUnavailableError(c, "File uploads are disabled (storage not configured)")
		}
		log.Error().Err(err).Int32("conversation_id", convID).Msg("Failed to upload file")
		return NewInternalError(c, "Failed to upload file")
	}

	log.Info().
		Int32("conversation_id", convID).
		Int32("message_id", msg.ID).
		Int64("size", file.Size).
		Msg("Attachment uploaded")

	resp := toMessageResponse(msg)
	fileURL := msg.Content
	if msg.FileURL != nil {
		fileURL = *msg.FileURL
	}
	return c.JSON(http.StatusCreated, UploadResponse{FileURL: fileURL, Message: resp})
}

// ClearMessages handles DELETE /api/v1/conversations/:id/messages
func (h *MessagingHandler) ClearMessages(c echo.Context) error {
	convID, ok := parseID(c, "id")
	if !ok {
		return NewFieldError(c, "id", "Must be a valid conversation ID")
	}

	deleted, err := h.messagingService.ClearMessages(convID)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			return NewNotFoundError(c, "Conversation not found")
		}
		log.Error().Err(err).Int32("conversation_id", convID).Msg("Failed to clear messages")
		return NewInternalError(c, "Failed to clear messages")
	}

	log.Info().Int32("conversation_id", convID).Int64("deleted", deleted).Int32("user_id", middleware.GetUserID(c)).Msg("Conversation cleared")
	return c.JSON(http.StatusOK, map[string]string{"message": "All messages cleared successfully"})
}

func toConversationResponse(conv *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        conv.ID,
		Name:      conv.Name,
		IsGroup:   conv.IsGroup,
		CreatedAt: conv.CreatedAt.Format(time.RFC3339),
	}
}

func toMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         m.Sender,
		Content:        m.Content,
		Timestamp:      m.Timestamp.Format(time.RFC3339),
		FileURL:        m.FileURL,
		MessageType:    string(m.MessageType),
		SenderUserID:   m.SenderUserID,
	}
}
