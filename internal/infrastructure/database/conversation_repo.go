package database

import (
	"context"

	"babounette/internal/core/chat"
)

// ConversationRepo transcriptions des conversations de l'assistant,
// chargées par requête plutôt que tenues en mémoire
type ConversationRepo struct {
	db *DB
}

// NewConversationRepo crée le dépôt des conversations
func NewConversationRepo(db *DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Ensure garantit l'existence de la session
func (r *ConversationRepo) Ensure(ctx context.Context, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO conversations (id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING
	`, sessionID)
	return err
}

// AppendMessage ajoute un message à la transcription
func (r *ConversationRepo) AppendMessage(ctx context.Context, sessionID string, m chat.Message) error {
	if _, err := r.db.Pool.Exec(ctx, `
		INSERT INTO conversation_messages (conversation_id, role, content, created_at)
		VALUES ($1, $2, $3, $4)
	`, sessionID, m.Role, m.Content, m.CreatedAt); err != nil {
		return err
	}
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE conversations SET updated_at = NOW() WHERE id = $1`, sessionID)
	return err
}

// History renvoie les derniers messages de la session, du plus ancien au
// plus récent
func (r *ConversationRepo) History(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT role, content, created_at FROM (
			SELECT id, role, content, created_at
			FROM conversation_messages
			WHERE conversation_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Clear efface la transcription, la session reste utilisable
func (r *ConversationRepo) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM conversation_messages WHERE conversation_id = $1`, sessionID)
	return err
}
