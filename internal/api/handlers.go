package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"artisan/internal/gateway"
	"artisan/internal/metrics"
	"artisan/internal/middleware"
	"artisan/internal/model"
	"artisan/internal/utils"
	"artisan/web"
)

// Handler serves the HTTP surface on top of a Gateway.
type Handler struct {
	gateway *gateway.Gateway
	metrics *metrics.Metrics
}

func NewHandler(gw *gateway.Gateway, m *metrics.Metrics) *Handler {
	return &Handler{gateway: gw, metrics: m}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.Use(h.metrics.Middleware())

	r.GET("/", index)
	r.StaticFS("/static", http.FS(web.Static()))
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	r.POST("/analyze_image", h.analyzeImage)
	r.POST("/tts", h.textToSpeech)
	r.POST("/translate", h.translate)
	r.POST("/stt", h.speechToText)
}

func index(c *gin.Context) {
	page, err := web.IndexHTML()
	if err != nil {
		log.Errorf("[Web] Failed to read index page: %v", err)
		utils.Error(c, http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "artisan-gateway",
	})
}

// analyzeImage handles POST /analyze_image with multipart field "image".
func (h *Handler) analyzeImage(c *gin.Context) {
	image, err := readUpload(c, "image")
	if err != nil {
		logger(c).Errorf("[Analyze] Failed to read upload: %v", err)
		utils.Error(c, http.StatusBadRequest, "failed to read image: "+err.Error())
		return
	}

	res, err := h.gateway.AnalyzeImage(c.Request.Context(), gateway.ImageAnalysisRequest{Image: image})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	logger(c).Infof("[Analyze] %d labels, description length=%d", len(res.Labels), len(res.Description))
	utils.Success(c, gin.H{
		"description": res.Description,
		"labels":      res.LabelsText(),
	})
}

// textToSpeech handles POST /tts and returns the MP3 as a hex string.
func (h *Handler) textToSpeech(c *gin.Context) {
	var req model.TTSRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.gateway.Synthesize(c.Request.Context(), gateway.SpeechRequest{
		Text:         req.Text,
		Language:     req.Lang,
		SpeakingRate: req.SpeakingRate.Float(),
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	logger(c).Infof("[TTS] voice=%s audio=%d bytes", res.Voice.Name, len(res.Audio))
	utils.Success(c, gin.H{"audio": res.AudioHex()})
}

func (h *Handler) translate(c *gin.Context) {
	var req model.TranslateRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.gateway.Translate(c.Request.Context(), gateway.TranslationRequest{
		Text:   req.Text,
		Target: req.Target,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"translation": res.Translation})
}

// speechToText handles POST /stt with multipart field "audio".
func (h *Handler) speechToText(c *gin.Context) {
	audio, err := readUpload(c, "audio")
	if err != nil {
		logger(c).Errorf("[STT] Failed to read upload: %v", err)
		utils.Error(c, http.StatusBadRequest, "failed to read audio: "+err.Error())
		return
	}

	res, err := h.gateway.Transcribe(c.Request.Context(), gateway.TranscriptionRequest{Audio: audio})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	logger(c).Infof("[STT] %d segments, transcript length=%d", res.Segments, len(res.Transcript))
	utils.Success(c, gin.H{"transcript": res.Transcript})
}

// readUpload returns the bytes of a multipart file field. A missing field or
// a request that is not multipart yields nil bytes and no error, leaving the
// decision to the gateway.
func readUpload(c *gin.Context, field string) ([]byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// bindJSON decodes the body into dst. An empty body leaves dst zero so the
// gateway reports the missing field; malformed JSON is a 400.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	logger(c).Warnf("[API] Invalid JSON body: %v", err)
	utils.Error(c, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
	return false
}

func logger(c *gin.Context) *log.Entry {
	return log.WithField("request_id", middleware.GetRequestID(c))
}
