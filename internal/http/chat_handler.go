package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickchat/internal/domain"
	"quickchat/internal/repository"
	"quickchat/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de chats y perfil.
type ChatHandler struct {
	logger   *zap.Logger
	contacts repository.ContactRepository
	chats    repository.ChatRepository
	chatServ *service.ChatService
	userServ *service.UserService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, contacts repository.ContactRepository, chats repository.ChatRepository, chatServ *service.ChatService, userServ *service.UserService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		contacts: contacts,
		chats:    chats,
		chatServ: chatServ,
		userServ: userServ,
	}
}

// Init maneja GET /api/init: el estado completo que consume el cliente.
func (h *ChatHandler) Init(c *gin.Context) {
	user, err := h.userServ.Profile(c.Request.Context())
	if err != nil {
		h.logger.Error("load profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load state"})
		return
	}
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list contacts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load state"})
		return
	}
	chats, err := h.chats.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list chats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "contacts": contacts, "chats": chats})
}

// ListContacts maneja GET /api/contacts.
func (h *ChatHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list contacts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list contacts"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// ListChats maneja GET /api/chats.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chats.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list chats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list chats"})
		return
	}
	c.JSON(http.StatusOK, chats)
}

// GetChat maneja GET /api/chats/:id.
func (h *ChatHandler) GetChat(c *gin.Context) {
	chat, err := h.chats.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		h.logger.Error("get chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get chat"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

// CreateChat maneja POST /api/chats.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req struct {
		ContactID string `json:"contactId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	chat, err := h.chatServ.CreateOrGet(c.Request.Context(), req.ContactID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingContact):
			c.JSON(http.StatusBadRequest, gin.H{"error": "contact id required"})
		case errors.Is(err, service.ErrContactNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		default:
			h.logger.Error("create chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create chat"})
		}
		return
	}

	c.JSON(http.StatusOK, chat)
}

// PostMessage maneja POST /api/chats/:id/messages.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	chat, err := h.chatServ.Append(c.Request.Context(), c.Param("id"), req.Text, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message text required"})
		case errors.Is(err, service.ErrChatNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		default:
			h.logger.Error("post message failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post message"})
		}
		return
	}

	c.JSON(http.StatusOK, chat)
}

// UpdateProfile maneja POST /api/profile.
func (h *ChatHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("update profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}
