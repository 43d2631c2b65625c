package companion

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/words"
)

// glucoseRequest is the POST /glucose body. Missing trend means unknown,
// missing timestamp means now.
type glucoseRequest struct {
	Value     *int   `json:"value" binding:"required"`
	Trend     *int   `json:"trend"`
	Timestamp *int64 `json:"timestamp"`
}

type settingsBody struct {
	Invert    bool   `json:"invert"`
	TextAlign string `json:"text_align"`
	Lang      string `json:"lang"`
}

func settingsJSON(s config.Settings) settingsBody {
	return settingsBody{
		Invert:    s.Invert,
		TextAlign: s.TextAlign.String(),
		Lang:      s.Language.String(),
	}
}

// Router returns the HTTP API and the face WebSocket endpoint
func (h *Hub) Router(wsPath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/glucose", h.handleGetGlucose)
	r.POST("/glucose", h.handlePostGlucose)
	r.GET("/settings", h.handleGetSettings)
	r.PUT("/settings", h.handlePutSettings)
	r.GET(wsPath, func(c *gin.Context) {
		h.ServeWS(c.Writer, c.Request)
	})

	return r
}

func (h *Hub) handleGetGlucose(c *gin.Context) {
	c.JSON(http.StatusOK, h.Data())
}

func (h *Hub) handlePostGlucose(c *gin.Context) {
	var req glucoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing value field"})
		return
	}

	trend := -1
	if req.Trend != nil {
		trend = *req.Trend
	}
	var ts int64
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	c.JSON(http.StatusOK, h.Update(*req.Value, trend, ts))
}

func (h *Hub) handleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, settingsJSON(h.Settings()))
}

func (h *Hub) handlePutSettings(c *gin.Context) {
	var req settingsBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	align, _ := config.ParseAlign(req.TextAlign)
	lang, _ := words.ParseLanguage(req.Lang)
	s := config.Settings{Invert: req.Invert, TextAlign: align, Language: lang}

	h.SetSettings(s)
	c.JSON(http.StatusOK, settingsJSON(s))
}
