package main

import (
	"tutortrack/core/logger"
	"tutortrack/core/server"
)

// @title TutorTrack API
// @version 1.0
// @description Bookkeeping API for private tutors: pupils, groups, fee payments and recurring session schedules

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
