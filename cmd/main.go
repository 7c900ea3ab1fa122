// Package main is the entry point for the bbs-service application.
//
// @title           Bar Bending Schedule API
// @version         1.0.0
// @description     Computes reinforcement bar bending schedules from bar group descriptions.
//
//	Cutting lengths, hooks, bends, laps and weights follow the selected design code (IS, NBC or ACI).
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/bbs-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key. Required when API_KEYS is set.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>" signed with JWT_SECRET and carrying the admin role.
//
// @tag.name        BBS
// @tag.description Schedule calculation, import and export
//
// @tag.name        Rate Cards
// @tag.description Steel rates used to price schedules
//
// @tag.name        Schedules
// @tag.description Saved schedules
//
// @tag.name        Audit
// @tag.description Audit trail of calculations and rate changes
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/bbs-service/docs" // swagger docs

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
