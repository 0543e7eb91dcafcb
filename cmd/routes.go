package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Get("/user/:id/ledger", authMiddleware.ThenFunc(app.userHandler.GetLedgerByUserID))
	mux.Get("/user/:id/ratings", authMiddleware.ThenFunc(app.ratingHandler.GetRatingsByUserID))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Put("/user/:id", authMiddleware.ThenFunc(app.userHandler.UpdateUser))

	// Items
	mux.Post("/item", authMiddleware.ThenFunc(app.itemHandler.CreateItem))
	mux.Get("/item/user/:user_id", authMiddleware.ThenFunc(app.itemHandler.GetItemsByUserID))
	mux.Get("/item/:id", authMiddleware.ThenFunc(app.itemHandler.GetItemByID))
	mux.Put("/item/:id", authMiddleware.ThenFunc(app.itemHandler.UpdateItem))
	mux.Del("/item/:id", authMiddleware.ThenFunc(app.itemHandler.DeleteItem))

	// Threads
	mux.Post("/thread/confirm", authMiddleware.ThenFunc(app.settlementHandler.ConfirmExchange))
	mux.Post("/thread/rate", authMiddleware.ThenFunc(app.ratingHandler.RateParticipant))
	mux.Post("/thread", authMiddleware.ThenFunc(app.threadHandler.CreateThread))
	mux.Get("/thread/user/:user_id", authMiddleware.ThenFunc(app.threadHandler.GetThreadsByUserID))
	mux.Get("/thread/:id", authMiddleware.ThenFunc(app.threadHandler.GetThreadByID))

	// Messages
	mux.Post("/api/messages", authMiddleware.ThenFunc(app.messageHandler.CreateMessage))
	mux.Get("/api/messages/:thread_id", authMiddleware.ThenFunc(app.messageHandler.GetMessagesForThread))
	mux.Del("/api/messages/:message_id", authMiddleware.ThenFunc(app.messageHandler.DeleteMessage))

	// Push tokens
	mux.Post("/fcm/token", authMiddleware.ThenFunc(app.userHandler.RegisterDeviceToken))

	// Realtime
	mux.Get("/ws", authMiddleware.ThenFunc(app.WebSocketHandler))

	return standardMiddleware.Then(mux)
}
