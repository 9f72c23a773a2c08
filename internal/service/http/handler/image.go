package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/room-stager/internal/modules/flow"
	"github.com/reusedev/room-stager/internal/modules/logs"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"github.com/reusedev/room-stager/internal/service/http/handler/request"
	respBody "github.com/reusedev/room-stager/internal/service/http/handler/response"
	"github.com/reusedev/room-stager/internal/service/http/response"
	"github.com/reusedev/room-stager/tools"
)

type Handler struct {
	service         *flow.Service
	defaultVariants int
}

func New(service *flow.Service, defaultVariants int) *Handler {
	return &Handler{
		service:         service,
		defaultVariants: defaultVariants,
	}
}

// flowContext keeps request values but detaches cancellation, so a client
// hanging up does not abort model calls and backoff already under way.
func flowContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// failed maps a flow error to the response body of the route.
func failed(c *gin.Context, err error, noImageMsg, msg string) {
	logs.Logger.Err(err).Str("request_id", observer.RequestFrom(c.Request.Context()).ID).Str("path", c.FullPath()).Msg("flow failed")
	if errors.Is(err, flow.ErrNoImage) {
		c.JSON(http.StatusInternalServerError, response.InternalError(noImageMsg))
		return
	}
	c.JSON(http.StatusInternalServerError, response.InternalError(msg))
}

func (h *Handler) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("No image provided"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, response.ParamError("No image provided"))
		return
	}
	img := flow.Image{
		MimeType: tools.DetectMimeType(header.Header.Get("Content-Type"), data),
		Data:     data,
	}
	ret, err := h.service.Analyze(flowContext(c), img)
	if err != nil {
		failed(c, err, "Failed to generate cleared image", "Analysis failed")
		return
	}
	removed := ret.RemovedItems
	if removed == nil {
		removed = []string{}
	}
	c.JSON(http.StatusOK, respBody.Analyze{RemovedItems: removed, ClearedImage: ret.ClearedImage.DataURL()})
}

func (h *Handler) Furnish(c *gin.Context) {
	var req request.Furnish
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Missing clearedImage or prompt"))
		return
	}
	if err := req.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError(err.Error()))
		return
	}
	img, err := request.DecodeImage(req.ClearedImage)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Invalid image format"))
		return
	}
	ret, err := h.service.Furnish(flowContext(c), img, req.Prompt, req.VariantCount(h.defaultVariants))
	if err != nil {
		failed(c, err, "Failed to generate furnished image", "Furnishing failed")
		return
	}
	c.JSON(http.StatusOK, respBody.NewFurnish(ret))
}

func (h *Handler) ClearRegion(c *gin.Context) {
	var req request.ClearRegion
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Missing image or crop"))
		return
	}
	if err := req.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError(err.Error()))
		return
	}
	img, err := request.DecodeImage(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Invalid image format"))
		return
	}
	ret, err := h.service.ClearRegion(flowContext(c), img, *req.Crop)
	if err != nil {
		failed(c, err, "Failed to generate cleared image", "Clearing region failed")
		return
	}
	c.JSON(http.StatusOK, respBody.ClearRegion{ClearedImage: ret.DataURL()})
}

func (h *Handler) Edit(c *gin.Context) {
	var req request.Edit
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Missing image or prompt"))
		return
	}
	if err := req.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError(err.Error()))
		return
	}
	img, err := request.DecodeImage(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Invalid image format"))
		return
	}
	ret, err := h.service.Edit(flowContext(c), img, req.Prompt)
	if err != nil {
		failed(c, err, "Failed to generate edited image", "Edit failed")
		return
	}
	c.JSON(http.StatusOK, respBody.Edit{EditedImage: ret.DataURL()})
}

func (h *Handler) Refine(c *gin.Context) {
	var req request.Refine
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Missing required fields"))
		return
	}
	if err := req.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError(err.Error()))
		return
	}
	img, err := request.DecodeImage(req.FurnishedImage)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError("Invalid image format"))
		return
	}
	ret, err := h.service.Refine(flowContext(c), img, *req.Crop, req.Prompt)
	if err != nil {
		failed(c, err, "Failed to generate refined image", "Refinement failed")
		return
	}
	c.JSON(http.StatusOK, respBody.Refine{RefinedImage: ret.DataURL()})
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
