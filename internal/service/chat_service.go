package service

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"quickchat/internal/domain"
	"quickchat/internal/repository"
)

var (
	ErrMissingContact  = errors.New("contact id required")
	ErrContactNotFound = errors.New("contact not found")
	ErrChatNotFound    = errors.New("chat not found")
	ErrEmptyMessage    = errors.New("message text required")
)

const defaultReplyDelay = time.Second

// Respuestas enlatadas para la auto-respuesta simulada.
var cannedReplies = []string{
	"Hey! How's it going?",
	"That's interesting, tell me more.",
	"Haha, good one 😄",
	"I'll get back to you in a bit.",
	"Sounds good to me!",
	"Really? I didn't know that.",
	"Let's catch up later today.",
}

// ChatService coordina la creacion de chats, el append de mensajes y la
// auto-respuesta diferida.
type ChatService struct {
	logger     *zap.Logger
	chats      repository.ChatRepository
	contacts   repository.ContactRepository
	scheduler  Scheduler
	replyDelay time.Duration
	now        func() time.Time
}

func NewChatService(logger *zap.Logger, chats repository.ChatRepository, contacts repository.ContactRepository, scheduler Scheduler, replyDelay time.Duration) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if replyDelay <= 0 {
		replyDelay = defaultReplyDelay
	}
	return &ChatService{
		logger:     logger,
		chats:      chats,
		contacts:   contacts,
		scheduler:  scheduler,
		replyDelay: replyDelay,
		now:        time.Now,
	}
}

// CreateOrGet devuelve el chat existente del contacto sin tocarlo, o crea
// uno nuevo vacio. Idempotente por contacto.
func (s *ChatService) CreateOrGet(ctx context.Context, contactID string) (domain.Chat, error) {
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return domain.Chat{}, ErrMissingContact
	}

	chat, err := s.chats.GetByContact(ctx, contactID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Chat{}, err
	}

	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Chat{}, ErrContactNotFound
		}
		return domain.Chat{}, err
	}

	now := s.now()
	chat = domain.Chat{
		// Id derivado del reloj en milisegundos; dos creaciones en el
		// mismo milisegundo colisionan, asumido en alcance demo.
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		ContactID:   contact.ID,
		Name:        contact.Name,
		Messages:    []domain.Message{},
		LastMessage: "",
		Time:        now.Format("15:04"),
	}
	if err := s.chats.Insert(ctx, chat); err != nil {
		return domain.Chat{}, err
	}
	return chat, nil
}

// Append agrega un mensaje al chat, actualiza lastMessage/time y programa
// la auto-respuesta; esta es fire-and-forget y recien se ve en una
// lectura posterior del chat.
func (s *ChatService) Append(ctx context.Context, chatID, text, msgType string) (domain.Chat, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Chat{}, ErrEmptyMessage
	}
	if msgType == "" {
		msgType = domain.MessageTypeSent
	}

	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Chat{}, ErrChatNotFound
		}
		return domain.Chat{}, err
	}

	message := domain.Message{
		Text: text,
		Type: msgType,
		Time: s.now().Format("15:04"),
	}
	chat.Messages = append(chat.Messages, message)
	chat.LastMessage = message.Text
	chat.Time = message.Time
	if err := s.chats.Update(ctx, chat); err != nil {
		return domain.Chat{}, err
	}

	s.scheduleReply(chat.ID)
	return chat, nil
}

func (s *ChatService) scheduleReply(chatID string) {
	if s.scheduler == nil {
		return
	}
	s.scheduler.AfterFunc(s.replyDelay, func() {
		if err := s.appendReply(chatID); err != nil {
			s.logger.Warn("auto reply failed", zap.Error(err), zap.String("chat_id", chatID))
		}
	})
}

func (s *ChatService) appendReply(chatID string) error {
	ctx := context.Background()
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	message := domain.Message{
		Text: cannedReplies[rand.Intn(len(cannedReplies))],
		Type: domain.MessageTypeReceived,
		Time: s.now().Format("15:04"),
	}
	chat.Messages = append(chat.Messages, message)
	chat.LastMessage = message.Text
	chat.Time = message.Time
	return s.chats.Update(ctx, chat)
}
