package admin

import (
	"github.com/autoluxe/internal/service"

	handlershared "github.com/autoluxe/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getCaller(c *gin.Context) (service.Caller, bool) {
	return handlershared.GetCaller(c)
}
