package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type SystemController struct {
	Pause *middlewares.PauseState
}

func NewSystemController(pause *middlewares.PauseState) *SystemController {
	return &SystemController{Pause: pause}
}

// PauseService -> Owner menyalakan mode maintenance; semua request
// non-Owner ditolak sampai dibuka lagi.
func (sc *SystemController) PauseService(c *gin.Context) {
	sc.Pause.Set(true)
	utils.InfoLogger.Println("Service paused by owner")
	utils.RespondJSON(c, http.StatusOK, "Service paused", gin.H{"paused": true})
}

// ResumeService -> Owner mematikan mode maintenance.
func (sc *SystemController) ResumeService(c *gin.Context) {
	sc.Pause.Set(false)
	utils.InfoLogger.Println("Service resumed by owner")
	utils.RespondJSON(c, http.StatusOK, "Service resumed", gin.H{"paused": false})
}
