package main

import (
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"barterBack/internal/cache"
	"barterBack/internal/config"
	"barterBack/internal/handlers"
	"barterBack/internal/repositories"
	"barterBack/internal/services"
	"barterBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	jwtKey   string

	userRepo       *repositories.UserRepository
	messageService *services.MessageService

	userHandler       *handlers.UserHandler
	itemHandler       *handlers.ItemHandler
	threadHandler     *handlers.ThreadHandler
	settlementHandler *handlers.SettlementHandler
	ratingHandler     *handlers.RatingHandler
	messageHandler    *handlers.MessageHandler

	wsManager *WebSocketManager
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	itemRepo := repositories.ItemRepository{DB: db}
	threadRepo := repositories.ThreadRepository{DB: db}
	ledgerRepo := repositories.LedgerRepository{DB: db}
	ratingRepo := repositories.RatingRepository{DB: db}
	messageRepo := repositories.MessageRepository{DB: db}

	nameCache := cache.NewNameCache(rdb)
	nameResolver := &services.DisplayNameResolver{Cache: nameCache, Users: &userRepo}
	notifier := &services.NotificationService{Client: fcmClient, Users: &userRepo}

	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	// Services
	userService := &services.UserService{
		UserRepo:   &userRepo,
		LedgerRepo: &ledgerRepo,
		NameCache:  nameCache,
		Tokens:     tokenManager,
	}
	itemService := &services.ItemService{ItemRepo: &itemRepo}
	threadService := &services.ThreadService{ThreadRepo: &threadRepo, ItemRepo: &itemRepo}
	messageService := &services.MessageService{MessageRepo: &messageRepo, ThreadRepo: &threadRepo, Notifier: notifier}
	settlementService := &services.SettlementService{
		Threads:  &threadRepo,
		Items:    &itemRepo,
		Ledger:   &ledgerRepo,
		Messages: &messageRepo,
		Names:    nameResolver,
		Notifier: notifier,
	}
	ratingService := &services.RatingService{
		Threads:  &threadRepo,
		Ratings:  &ratingRepo,
		Users:    &userRepo,
		Names:    nameResolver,
		Notifier: notifier,
	}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	itemHandler := &handlers.ItemHandler{Service: itemService}
	threadHandler := &handlers.ThreadHandler{Service: threadService}
	settlementHandler := &handlers.SettlementHandler{Service: settlementService}
	ratingHandler := &handlers.RatingHandler{Service: ratingService, RatingRepo: &ratingRepo}
	messageHandler := &handlers.MessageHandler{MessageService: messageService}

	return &application{
		errorLog:          errorLog,
		infoLog:           infoLog,
		db:                db,
		jwtKey:            cfg.JWT.SigningKey,
		userRepo:          &userRepo,
		messageService:    messageService,
		userHandler:       userHandler,
		itemHandler:       itemHandler,
		threadHandler:     threadHandler,
		settlementHandler: settlementHandler,
		ratingHandler:     ratingHandler,
		messageHandler:    messageHandler,
	}
}
