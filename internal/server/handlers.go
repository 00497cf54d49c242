package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/gaps"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/render"
	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/series"
	"codeberg.org/mutker/vitalchart/internal/stats"
	"codeberg.org/mutker/vitalchart/internal/store"
	"codeberg.org/mutker/vitalchart/internal/surface"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// NoteHeader carries each fallback note of a rendered chart.
const NoteHeader = "X-Chart-Note"

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type profilesResponse struct {
	Profiles  []profile.Profile `json:"profiles"`
	Timezones []render.Timezone `json:"timezones"`
}

// FrameResponse is the body of POST /frame.
type FrameResponse struct {
	Metric    string                `json:"metric"`
	Title     string                `json:"title"`
	Strategy  profile.Strategy      `json:"strategy"`
	Gaps      []gaps.Gap            `json:"gaps"`
	GapCounts gaps.Counts           `json:"gap_counts"`
	Stats     *stats.Summary        `json:"stats,omitempty"`
	Tooltip   render.TooltipPayload `json:"tooltip"`
	Legend    []render.LegendEntry  `json:"legend"`
	Summary   string                `json:"summary"`
	Notes     []string              `json:"notes"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) profiles(w http.ResponseWriter, _ *http.Request) {
	resp := profilesResponse{Timezones: render.Timezones()}
	for _, key := range profile.Keys() {
		resp.Profiles = append(resp.Profiles, profile.Resolve(key))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) renderPayload(w http.ResponseWriter, r *http.Request) {
	reqID := s.begin(w)

	view, format, err := s.viewFromRequest(r)
	if err != nil {
		s.fail(w, reqID, err)
		return
	}
	if err := s.readPayload(w, r, &view); err != nil {
		s.fail(w, reqID, err)
		return
	}

	s.writeChart(w, reqID, view, format)
}

func (s *Server) framePayload(w http.ResponseWriter, r *http.Request) {
	reqID := s.begin(w)

	view, _, err := s.viewFromRequest(r)
	if err != nil {
		s.fail(w, reqID, err)
		return
	}
	if err := s.readPayload(w, r, &view); err != nil {
		s.fail(w, reqID, err)
		return
	}

	frame := s.compose(reqID, view, surface.FormatJSON)
	resp := FrameResponse{
		Metric:    frame.Profile.Key,
		Title:     frame.Profile.Title,
		Strategy:  frame.Strategy,
		Gaps:      frame.Gaps,
		GapCounts: gaps.Count(frame.Gaps),
		Tooltip:   frame.Tooltip,
		Legend:    frame.Legend,
		Summary:   frame.Summary,
		Notes:     frame.Notes,
	}
	if sum, ok := stats.Summarize(view.Samples); ok {
		resp.Stats = &sum
	}
	if resp.Notes == nil {
		resp.Notes = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) users(w http.ResponseWriter, r *http.Request) {
	reqID := s.begin(w)

	if s.repo == nil {
		s.fail(w, reqID, errors.New().WithMessage(ErrUnavailable, "no sample store configured"))
		return
	}

	users, err := s.repo.Users(r.Context())
	if err != nil {
		s.fail(w, reqID, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) renderStored(w http.ResponseWriter, r *http.Request) {
	reqID := s.begin(w)
	errFactory := errors.New()

	if s.repo == nil {
		s.fail(w, reqID, errFactory.WithMessage(ErrUnavailable, "no sample store configured"))
		return
	}

	view, format, err := s.viewFromRequest(r)
	if err != nil {
		s.fail(w, reqID, err)
		return
	}

	vars := mux.Vars(r)
	q := r.URL.Query()
	query := store.Query{
		UserID:         vars["user"],
		Metric:         vars["metric"],
		IncludeImputed: q.Get("include_imputed") != "false",
	}
	if query.Start, err = parseTimeParam(q.Get("start")); err != nil {
		s.fail(w, reqID, err)
		return
	}
	if query.End, err = parseTimeParam(q.Get("end")); err != nil {
		s.fail(w, reqID, err)
		return
	}
	if query.Limit, err = intParam(q.Get("limit"), 0); err != nil {
		s.fail(w, reqID, err)
		return
	}
	if query.Offset, err = intParam(q.Get("offset"), 0); err != nil {
		s.fail(w, reqID, err)
		return
	}

	// Without an explicit limit the whole range is drawn.
	var samples []series.Sample
	if q.Has("limit") {
		samples, err = s.repo.Samples(r.Context(), query)
	} else {
		samples, err = store.ReadAll(r.Context(), s.repo, query)
	}
	if err != nil {
		s.fail(w, reqID, err)
		return
	}

	view.Samples = samples
	view.Metric = query.Metric
	for _, smp := range samples {
		if smp.IsImputed {
			view.ImputationApplied = true
			break
		}
	}

	s.writeChart(w, reqID, view, format)
}

func (s *Server) begin(w http.ResponseWriter) string {
	reqID := uuid.NewString()
	w.Header().Set(requestIDHeader, reqID)
	return reqID
}

// readPayload decodes the request body into the view.
func (s *Server) readPayload(w http.ResponseWriter, r *http.Request, view *render.ViewState) error {
	p, err := series.Decode(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		return err
	}
	samples, err := p.Samples()
	if err != nil {
		return err
	}

	view.Samples = samples
	if view.Metric == "" {
		view.Metric = p.MetricKey()
	}
	if r.URL.Query().Get("timezone") == "" && p.Timezone != "" {
		view.Timezone = p.Timezone
	}
	view.ImputationApplied = p.ImputationApplied
	view.DataSummary = p.DataSummary
	if p.GapsDetected != nil {
		view.ReportedGaps = p.ReportedClasses()
	}
	return nil
}

func (s *Server) compose(reqID string, view render.ViewState, format string) render.Frame {
	frame := render.Compose(view)
	for _, note := range frame.Notes {
		s.logger.Warn().Str("request_id", reqID).Str("metric", view.Metric).Msg(note)
	}
	s.metrics.ChartRendered(format, len(view.Samples), len(frame.Gaps), len(frame.Notes))

	s.logger.Debug().
		Str("request_id", reqID).
		Str("metric", frame.Profile.Key).
		Str("strategy", string(frame.Strategy)).
		Int("samples", len(view.Samples)).
		Int("gaps", len(frame.Gaps)).
		Int("commands", len(frame.Commands)).
		Msg("Chart composed")

	return frame
}

func (s *Server) writeChart(w http.ResponseWriter, reqID string, view render.ViewState, format string) {
	frame := s.compose(reqID, view, format)

	width, height := view.Width, view.Height
	if width <= 0 {
		width = render.DefaultWidth
	}
	if height <= 0 {
		height = render.DefaultHeight
	}

	var buf bytes.Buffer
	if err := surface.Encode(&buf, format, width, height, frame.Commands); err != nil {
		s.fail(w, reqID, err)
		return
	}

	for _, note := range frame.Notes {
		w.Header().Add(NoteHeader, note)
	}
	w.Header().Set("Content-Type", surface.ContentType(format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug().Err(err).Str("request_id", reqID).Msg("Failed to write response")
	}
}

// viewFromRequest applies the query parameters over the server defaults.
func (s *Server) viewFromRequest(r *http.Request) (render.ViewState, string, error) {
	errFactory := errors.New()
	q := r.URL.Query()
	view := s.defaults
	var err error

	format := s.format
	if f := q.Get("format"); f != "" {
		format = f
	}
	if !surface.IsValidFormat(format) {
		return view, "", errFactory.WithData(errors.ErrInvalidFormat, format)
	}

	if view.Width, err = intParam(q.Get("width"), view.Width); err != nil {
		return view, "", err
	}
	if view.Height, err = intParam(q.Get("height"), view.Height); err != nil {
		return view, "", err
	}
	if view.Width <= 0 || view.Height <= 0 || view.Width > render.MaxWidth || view.Height > render.MaxHeight {
		return view, "", errFactory.WithData(errors.ErrInvalidDimensions, struct {
			Width  int
			Height int
		}{
			Width:  view.Width,
			Height: view.Height,
		})
	}
	if view.XTickCount, err = intParam(q.Get("x_ticks"), view.XTickCount); err != nil {
		return view, "", err
	}
	if view.XTickCount < 0 || view.XTickCount > scale.MaxXTickCount {
		return view, "", errFactory.WithData(ErrInvalidRequest, struct {
			Field string
			Value int
		}{
			Field: "x_ticks",
			Value: view.XTickCount,
		})
	}
	if v := q.Get("connect_gaps"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return view, "", errFactory.WithData(ErrInvalidRequest, "connect_gaps")
		}
		view.ConnectGaps = b
	}
	if v := q.Get("timezone"); v != "" {
		view.Timezone = v
	}
	if v := q.Get("locale"); v != "" {
		view.Locale = v
	}
	if v := q.Get("metric"); v != "" {
		view.Metric = v
	}

	px, py := q.Get("pointer_x"), q.Get("pointer_y")
	if px != "" {
		x, errX := strconv.ParseFloat(px, 64)
		y, errY := strconv.ParseFloat(py, 64)
		if errX != nil || (py != "" && errY != nil) {
			return view, "", errFactory.WithData(ErrInvalidRequest, "pointer")
		}
		view.Pointer = &canvas.Point{X: x, Y: y}
	}

	return view, format, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New().Wrap(ErrInvalidRequest, err)
	}
	return n, nil
}

func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := series.ParseTimestamp(v)
	if err != nil {
		return time.Time{}, errors.New().Wrap(ErrInvalidRequest, err)
	}
	return t, nil
}

func statusFor(err error) int {
	switch {
	case errors.HasCode(err, ErrInvalidRequest),
		errors.HasCode(err, ErrDecodeInput),
		errors.HasCode(err, errors.ErrInvalidSample),
		errors.HasCode(err, errors.ErrUnorderedInput),
		errors.HasCode(err, errors.ErrInvalidFormat),
		errors.HasCode(err, errors.ErrInvalidDimensions),
		errors.HasCode(err, store.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.HasCode(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, reqID string, err error) {
	status := statusFor(err)
	code := string(errors.ErrInternal)
	var appErr errors.Error
	if errors.As(err, &appErr) {
		code = string(appErr.Code())
	}

	event := s.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = s.logger.Error()
	}
	event.Str("request_id", reqID).Str("error_code", code).Err(err).Int("status", status).Msg("Request failed")

	writeJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
