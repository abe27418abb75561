package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yildizm/textpulse/internal/chart"
	"github.com/yildizm/textpulse/internal/formatter"
	"github.com/yildizm/textpulse/internal/logger"
	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

type pageData struct {
	Alerts []string

	Input      string
	Length     int
	MaxLength  int
	WarnLength int

	Result *scoring.AnalysisResult

	Headers []string
	Rows    [][]string

	ChartWidth  int
	ChartHeight int
	NoData      string
}

type confirmData struct {
	Alerts   []string
	Question string
}

func (s *Server) page(alerts []string) pageData {
	state := s.ctrl.Snapshot()

	rows := make([][]string, 0, len(state.History))
	for _, entry := range state.History {
		rows = append(rows, formatter.HistoryRow(entry))
	}

	return pageData{
		Alerts:      alerts,
		Input:       state.Input,
		Length:      session.Length(state.Input),
		MaxLength:   s.ctrl.MaxLength(),
		WarnLength:  s.opts.WarnLength,
		Result:      state.Result,
		Headers:     formatter.TableHeaders,
		Rows:        rows,
		ChartWidth:  s.opts.Chart.Width,
		ChartHeight: s.opts.Chart.Height,
		NoData:      session.MsgNoChartData,
	}
}

// flash collects alerts raised while handling one request
type flash struct {
	alerts []string
}

func (f *flash) prompter(confirm func(string) bool) session.Prompter {
	return session.Prompts{
		AlertFunc:   func(msg string) { f.alerts = append(f.alerts, msg) },
		ConfirmFunc: confirm,
	}
}

// index reloads the history so entries scored elsewhere show up; a failed
// reload is logged and the last known history is shown
func (s *Server) index(c *gin.Context) {
	s.ctrl.LoadHistory(c.Request.Context())
	c.HTML(http.StatusOK, "index.html", s.page(nil))
}

// analyze adopts the posted text as the input and submits it. Validation
// alerts are shown on the page; service failures keep the input.
func (s *Server) analyze(c *gin.Context) {
	f := &flash{}
	p := f.prompter(nil)

	if s.ctrl.Edit(p, c.PostForm("text")) {
		s.ctrl.Submit(c.Request.Context(), p)
	}

	if len(f.alerts) > 0 {
		c.HTML(http.StatusUnprocessableEntity, "index.html", s.page(f.alerts))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) clearPage(c *gin.Context) {
	c.HTML(http.StatusOK, "clear.html", confirmData{Question: session.MsgConfirmClear})
}

// clear deletes the history once the form carries confirm=yes
func (s *Server) clear(c *gin.Context) {
	f := &flash{}
	confirmed := c.PostForm("confirm") == "yes"
	s.ctrl.Clear(c.Request.Context(), f.prompter(func(string) bool { return confirmed }))
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) chartSVG(c *gin.Context) {
	var buf bytes.Buffer
	err := chart.Render(&buf, s.ctrl.Snapshot().History, chart.SVG, s.opts.Chart)
	switch {
	case errors.Is(err, chart.ErrNoData):
		c.Status(http.StatusNoContent)
	case err != nil:
		s.log.ErrorWithFields("chart rendering failed", []logger.Field{logger.Error(err)})
		c.String(http.StatusInternalServerError, "chart rendering failed")
	default:
		c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
	}
}

// entry renders the tooltip of one history entry; unknown ids have no content
func (s *Server) entry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id: %s", c.Param("id"))
		return
	}

	entry, ok := session.LookupEntry(s.ctrl.Snapshot().History, id)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "entry.html", entry)
}

func (s *Server) health(c *gin.Context) {
	state := s.ctrl.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"entries": len(state.History),
		"result":  state.Result != nil,
	})
}

func (s *Server) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.opts.Metrics.Snapshot())
}
