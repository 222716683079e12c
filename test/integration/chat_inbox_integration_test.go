package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"gasflow-be/internal/model"
	"gasflow-be/internal/repository/implementation"
	"gasflow-be/internal/repository/specification"
	"gasflow-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func connectTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	err = gormDB.AutoMigrate(&model.User{}, &model.ChatMessage{})
	require.NoError(t, err)
	return gormDB
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()
	u := &model.User{
		Id:       uuid.New(),
		Email:    "it-" + uuid.New().String() + "@example.com",
		FullName: name,
		Role:     role,
		Status:   "active",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedMessage(t *testing.T, db *gorm.DB, sender, receiver uuid.UUID, text string, at time.Time, read bool, state string) *model.ChatMessage {
	t.Helper()
	m := &model.ChatMessage{
		Id:         uuid.New(),
		SenderId:   sender,
		ReceiverId: &receiver,
		Message:    text,
		Type:       "text",
		State:      state,
		IsRead:     read,
		CreatedAt:  at,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

// TestAdminInboxAgainstDB seeds two customer threads and checks the admin
// inbox queries end to end: unread counts, newest-thread-first ordering,
// conversation symmetry, soft-delete exclusion and mark-all-read.
func TestAdminInboxAgainstDB(t *testing.T) {
	gormDB := connectTestDB(t)
	ctx := context.Background()

	admin := seedUser(t, gormDB, "Support", "admin")
	custA := seedUser(t, gormDB, "Ani", "customer")
	custB := seedUser(t, gormDB, "Bima", "customer")

	t.Cleanup(func() {
		ids := []uuid.UUID{admin.Id, custA.Id, custB.Id}
		gormDB.Where("sender_id IN ? OR receiver_id IN ?", ids, ids).Delete(&model.ChatMessage{})
		gormDB.Unscoped().Where("id IN ?", ids).Delete(&model.User{})
	})

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

	// Customer A: two read messages, one unread, plus a soft-deleted one
	// that is the newest row of the thread.
	seedMessage(t, gormDB, custA.Id, admin.Id, "how much is a 12kg refill?", base, true, "active")
	seedMessage(t, gormDB, admin.Id, custA.Id, "Rp 230000, delivered today", base.Add(1*time.Minute), true, "active")
	seedMessage(t, gormDB, custA.Id, admin.Id, "great, order placed", base.Add(2*time.Minute), true, "active")
	lastA := seedMessage(t, gormDB, custA.Id, admin.Id, "where is my delivery?", base.Add(3*time.Minute), false, "active")
	seedMessage(t, gormDB, custA.Id, admin.Id, "nevermind", base.Add(4*time.Minute), false, "soft_deleted")

	// Customer B: one unread message, newer than anything from A.
	seedMessage(t, gormDB, custB.Id, admin.Id, "do you deliver to Bekasi?", base.Add(10*time.Minute), false, "active")

	repo := implementation.NewChatMessageRepository(gormDB)

	t.Run("ListCustomerThreads orders by last message and counts unread", func(t *testing.T) {
		threads, err := repo.ListCustomerThreads(ctx)
		require.NoError(t, err)

		idxA, idxB := -1, -1
		for i, th := range threads {
			switch th.CustomerId {
			case custA.Id:
				idxA = i
			case custB.Id:
				idxB = i
			}
		}
		require.GreaterOrEqual(t, idxA, 0)
		require.GreaterOrEqual(t, idxB, 0)

		// B wrote last, so B's thread ranks above A's.
		assert.Less(t, idxB, idxA)

		// Soft-deleted rows count for nothing: not as last message, not as unread.
		assert.Equal(t, int64(1), threads[idxA].UnreadCount)
		assert.Equal(t, lastA.Message, threads[idxA].LastMessage)
		assert.Equal(t, int64(1), threads[idxB].UnreadCount)
		assert.Equal(t, "Ani", threads[idxA].CustomerName)
	})

	t.Run("FindConversation is symmetric and ascending", func(t *testing.T) {
		msgs, err := repo.FindConversation(ctx, custA.Id, admin.Id)
		require.NoError(t, err)
		require.Len(t, msgs, 4)

		for i := 1; i < len(msgs); i++ {
			assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
		}

		// Both directions of the thread are present.
		assert.Equal(t, custA.Id, msgs[0].SenderId)
		assert.Equal(t, admin.Id, msgs[1].SenderId)
		assert.Equal(t, "Support", msgs[1].SenderName)
		assert.Equal(t, "admin", string(msgs[1].SenderRole))

		for _, m := range msgs {
			assert.NotEqual(t, "nevermind", m.Message)
		}
	})

	t.Run("FindAll with visibility spec excludes soft-deleted rows", func(t *testing.T) {
		msgs, err := repo.FindAll(ctx,
			specification.VisibleMessages{},
			specification.ConversationBetween{A: custA.Id, B: admin.Id},
		)
		require.NoError(t, err)
		assert.Len(t, msgs, 4)
	})

	t.Run("MarkAllRead is idempotent", func(t *testing.T) {
		require.NoError(t, repo.MarkAllRead(ctx, admin.Id))
		require.NoError(t, repo.MarkAllRead(ctx, admin.Id))

		threads, err := repo.ListCustomerThreads(ctx)
		require.NoError(t, err)
		for _, th := range threads {
			if th.CustomerId == custA.Id || th.CustomerId == custB.Id {
				assert.Zero(t, th.UnreadCount)
			}
		}
	})
}
