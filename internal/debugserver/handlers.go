package debugserver

import (
	"bytes"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/drivers/framebuffer"
	"github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local viewer pages are served from anywhere
	},
}

const writeWait = time.Second

const (
	defaultLogCount = 50
	maxLogCount     = 500
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) status(c *gin.Context) {
	if s.deps.Kernel == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "kernel not attached"})
		return
	}
	resp := gin.H{
		"state":  s.deps.Kernel.State().String(),
		"memory": s.deps.Kernel.Memory(),
	}
	if appID, instanceID, ok := s.deps.Kernel.Current(); ok {
		resp["app"] = appID
		resp["instance"] = instanceID
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) metricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Metrics.Snapshot())
}

// screen encodes the last flipped frame.
func (s *Server) screen(c *gin.Context) {
	if s.deps.Device == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no simulator device"})
		return
	}
	fb := s.deps.Device.Framebuffer()
	if fb == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "display not initialized"})
		return
	}

	data, err := encodeFrame(fb)
	if err != nil {
		s.logger.Error("Failed to encode screen", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

// stream pushes a PNG over a websocket every time the panel flips.
func (s *Server) stream(c *gin.Context) {
	if s.deps.Device == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no simulator device"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Reads only exist to notice the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.StreamInterval)
	defer ticker.Stop()

	var (
		sent bool
		last uint64
	)
	for {
		select {
		case <-gone:
			return
		case <-s.closing:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
		}

		fb := s.deps.Device.Framebuffer()
		if fb == nil {
			continue
		}
		flips := fb.Flips()
		if sent && flips == last {
			continue
		}
		data, err := encodeFrame(fb)
		if err != nil {
			s.logger.Error("Failed to encode screen", zap.Error(err))
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}
		sent, last = true, flips
	}
}

// key injects a key event. action is tap (default), press or release.
func (s *Server) key(c *gin.Context) {
	if s.deps.Device == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no simulator device"})
		return
	}
	code, err := keycode.Parse(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keys := s.deps.Device.Keys()
	action := c.DefaultQuery("action", "tap")
	switch action {
	case "tap":
		keys.Tap(code)
	case "press":
		keys.Press(code)
	case "release":
		keys.Release(code)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action " + strconv.Quote(action)})
		return
	}

	s.logger.Debug("Injected key", zap.String("key", code.String()), zap.String("action", action))
	c.JSON(http.StatusOK, gin.H{"key": code.String(), "action": action})
}

func (s *Server) logs(c *gin.Context) {
	if s.deps.Ring == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "log buffer disabled"})
		return
	}
	n := defaultLogCount
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = min(v, maxLogCount)
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": s.deps.Ring.Recent(n),
		"total":   s.deps.Ring.Total(),
	})
}

func encodeFrame(fb *framebuffer.Display) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) clearLogs(c *gin.Context) {
	if s.deps.Ring == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "log buffer disabled"})
		return
	}
	dropped := s.deps.Ring.Len()
	s.deps.Ring.Clear()
	c.JSON(http.StatusOK, gin.H{"cleared": dropped})
}
