package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/service"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

// ShareHandler builds the host compose URL for a share action.
func ShareHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.BuildShareURL(serverCtx, entity.ShareParams{
			Text:     c.Query("text"),
			EmbedURL: c.Query("embed"),
		})
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// OpenURLHandler validates an external link and returns it with the browser
// fallback.
func OpenURLHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.BuildOpenURL(serverCtx, c.Query("url"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
