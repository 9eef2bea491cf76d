package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/repository/unitofwork"
	"healthlink-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
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

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Medicine Repository", func(t *testing.T) {
		count, err := uow.MedicineRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Medicine count: %d", count)
	})

	t.Run("Check Transactional Chat Creation", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:    userId,
			Name:  "Integration Test User",
			Email: "test-integration-" + uuid.New().String() + "@example.com",
			Role:  "patient",
		}

		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)

		// Transaction Test
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		chatId := uuid.New()
		chat := &entity.Chat{
			Id:    chatId,
			Title: "Integration Chat",
		}
		err = uow.ChatRepository().Create(ctx, chat)
		assert.NoError(t, err)

		err = uow.ChatRepository().AppendMessage(ctx, &entity.ChatMessage{
			Id:      uuid.New(),
			ChatId:  chatId,
			Role:    "Assistant",
			Message: "Hello, how can I help you today?",
		})
		assert.NoError(t, err)

		err = uow.ChatRepository().AddMember(ctx, &entity.ChatMember{
			Id:     uuid.New(),
			UserId: userId,
			ChatId: chatId,
		})
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		member, err := uow.ChatRepository().IsMember(context.Background(), userId, chatId)
		assert.NoError(t, err)
		assert.True(t, member)

		t.Log("Successfully created Chat with Member in Transaction")
	})
}
