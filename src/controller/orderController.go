package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/service"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
	"github.com/pinkyblu/bp-tracker-test/src/xhttp"
)

// CreateListingHandler lists one canvas at a fixed price.
func CreateListingHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.CreateListingParams
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.CreateListing(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// AcceptOfferHandler fulfills the best offer on an owned canvas. Offers
// without an order hash are rejected before any network call.
func AcceptOfferHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.AcceptOfferParams
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.AcceptOffer(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// BuyFloorHandler fulfills one of the collection's floor listings.
func BuyFloorHandler(serverCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entity.BuyFloorParams
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.BuyFloorListing(c.Request.Context(), serverCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
