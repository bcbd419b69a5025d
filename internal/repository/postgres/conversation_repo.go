package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
)

// ConversationRepository implements domain.ConversationRepository using PostgreSQL
type ConversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

// Create creates a new conversation
func (r *ConversationRepository) Create(conv *domain.Conversation) (*domain.Conversation, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO conversations (name, is_group) VALUES ($1, $2)
		RETURNING id, name, is_group, created_at`, conv.Name, conv.IsGroup)
	return scanConversation(row)
}

// GetByID retrieves a conversation
func (r *ConversationRepository) GetByID(id int32) (*domain.Conversation, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT id, name, is_group, created_at FROM conversations WHERE id = $1`, id)
	conv, err := scanConversation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return conv, nil
}

// List returns conversations, optionally filtered by the group flag
func (r *ConversationRepository) List(isGroup *bool) ([]*domain.Conversation, error) {
	filter := pgtype.Bool{}
	if isGroup != nil {
		filter = pgtype.Bool{Bool: *isGroup, Valid: true}
	}

	rows, err := r.pool.Query(context.Background(), `
		SELECT id, name, is_group, created_at FROM conversations
		WHERE $1::BOOLEAN IS NULL OR is_group = $1
		ORDER BY name, id`, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*domain.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

func scanConversation(row pgx.Row) (*domain.Conversation, error) {
	var c domain.Conversation
	if err := row.Scan(&c.ID, &c.Name, &c.IsGroup, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// MessageRepository implements domain.MessageRepository using PostgreSQL
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create stores a message
func (r *MessageRepository) Create(msg *domain.Message) (*domain.Message, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO messages (conversation_id, sender, content, file_url, message_type, sender_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, conversation_id, sender, content, timestamp, file_url, message_type, sender_user_id`,
		msg.ConversationID, msg.Sender, msg.Content, stringPtrToPgText(msg.FileURL),
		string(msg.MessageType), int32PtrToPgInt4(msg.SenderUserID),
	)
	created, err := scanMessage(row)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return created, nil
}

// GetByConversation lists the messages of a conversation in chronological order
func (r *MessageRepository) GetByConversation(conversationID int32) ([]*domain.Message, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, conversation_id, sender, content, timestamp, file_url, message_type, sender_user_id
		FROM messages WHERE conversation_id = $1 ORDER BY timestamp, id`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// DeleteByConversation removes every message of a conversation and reports how many were deleted
func (r *MessageRepository) DeleteByConversation(conversationID int32) (int64, error) {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM messages WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		m            domain.Message
		fileURL      pgtype.Text
		messageType  string
		senderUserID pgtype.Int4
	)
	if err := row.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Content, &m.Timestamp,
		&fileURL, &messageType, &senderUserID); err != nil {
		return nil, err
	}
	m.FileURL = pgTextToStringPtr(fileURL)
	m.MessageType = domain.MessageType(messageType)
	m.SenderUserID = pgInt4ToInt32Ptr(senderUserID)
	return &m, nil
}
