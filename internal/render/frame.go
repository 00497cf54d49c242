package render

import (
	"fmt"

	"codeberg.org/mutker/vitalchart/internal/canvas"
	"codeberg.org/mutker/vitalchart/internal/gaps"
	"codeberg.org/mutker/vitalchart/internal/profile"
	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/segment"
)

// Frame is everything computed for one ViewState.
type Frame struct {
	Profile  profile.Profile
	Strategy profile.Strategy
	Scales   scale.Scales
	Segments []segment.Segment
	Gaps     []gaps.Gap
	Commands []canvas.Command
	Tooltip  TooltipPayload
	Legend   []LegendEntry
	Summary  string
	// Notes lists the fallbacks taken while composing, for the caller to log.
	Notes []string
}

// Compose runs the whole pipeline for view: profile resolution, scales,
// gap detection, segment planning, drawing commands, tooltip, legend and
// summary text.
func Compose(view ViewState) Frame {
	res := profile.Lookup(view.Metric)
	w, h := view.size()

	var opts []scale.Option
	if view.XTickCount > 0 {
		opts = append(opts, scale.WithXTickCount(view.XTickCount))
	}
	sc := scale.Build(view.Samples, res.Profile, w, h, view.margins(), opts...)
	gs := gaps.Detect(view.Samples)
	segs := segment.Plan(view.Samples, view.ConnectGaps)

	f := Frame{
		Profile:  res.Profile,
		Strategy: res.Strategy,
		Scales:   sc,
		Segments: segs,
		Gaps:     gs,
		Commands: Plan(view, res.Profile, sc, segs, gs),
		Tooltip:  Tooltip(view, res.Profile, sc),
		Legend:   Legend(res.Profile),
		Summary:  SummaryText(view, res.Profile, gs),
	}

	if res.Strategy == profile.StrategyFallback {
		f.Notes = append(f.Notes, fmt.Sprintf("unknown metric %q, using %s profile", view.Metric, res.Profile.Key))
	}
	if _, ok := view.location(); !ok {
		f.Notes = append(f.Notes, fmt.Sprintf("unknown timezone %q, using UTC", view.Timezone))
	}
	if view.ReportedGaps != nil && !gaps.Reconcile(gaps.Count(gs), gaps.CountReported(view.ReportedGaps)) {
		f.Notes = append(f.Notes, "gap summary from source disagrees with gaps on chart")
	}

	return f
}

// Draw replays the frame's commands onto s.
func (f Frame) Draw(s canvas.Surface) {
	canvas.Replay(s, f.Commands)
}
