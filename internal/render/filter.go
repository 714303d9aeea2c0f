package render

import (
	"fmt"
	"strings"

	"mediareel/internal/catalog"
	"mediareel/internal/scheduler"
)

// FilterGraph is a built filter_complex script plus the stream labels
// the output mapping should use.
type FilterGraph struct {
	Script       string
	VideoOut     string
	AudioOut     string
	TotalSeconds float64
}

// BuildFilterGraph lays every placement over a black base frame at its
// planned start time. Each placement fades in, is centered, and shows
// only inside its own time slot; later placements overlay earlier ones.
// The main audio track is mixed with any audio embedded in video
// placements, delayed to the video's slot.
//
// Input ordering matches the ffmpeg command line: placements first, in
// plan order, then the audio track.
func BuildFilterGraph(job scheduler.Job, fps int, crossfadeSeconds float64) FilterGraph {
	var b strings.Builder

	total := 0.0
	for _, p := range job.Placements {
		if end := p.StartSeconds + p.Duration; end > total {
			total = end
		}
	}

	fmt.Fprintf(&b, "color=c=black:s=%dx%d:r=%d:d=%s[base];",
		job.Frame.Width, job.Frame.Height, fps, formatSeconds(total))

	for i, p := range job.Placements {
		fmt.Fprintf(&b, "[%d:v]scale=%d:%d,setsar=1,fade=t=in:st=0:d=%s,setpts=PTS-STARTPTS+%s/TB[v%d];",
			i, p.TargetWidth, p.TargetHeight,
			formatSeconds(crossfadeSeconds), formatSeconds(p.StartSeconds), i)
	}

	last := "[base]"
	for i, p := range job.Placements {
		out := fmt.Sprintf("[ov%d]", i)
		fmt.Fprintf(&b, "%s[v%d]overlay=(W-w)/2:(H-h)/2:enable='between(t,%s,%s)'%s;",
			last, i, formatSeconds(p.StartSeconds), formatSeconds(p.StartSeconds+p.Duration), out)
		last = out
	}

	audioInput := len(job.Placements)
	mixInputs := []string{fmt.Sprintf("[%d:a]", audioInput)}
	for i, p := range job.Placements {
		if p.Asset.Kind != catalog.KindVideo || !p.Asset.HasAudio {
			continue
		}
		delayMS := int(p.StartSeconds * 1000)
		fmt.Fprintf(&b, "[%d:a]adelay=%d:all=1[a%d];", i, delayMS, i)
		mixInputs = append(mixInputs, fmt.Sprintf("[a%d]", i))
	}

	audioOut := fmt.Sprintf("%d:a", audioInput)
	if len(mixInputs) > 1 {
		fmt.Fprintf(&b, "%samix=inputs=%d:duration=first[aout]", strings.Join(mixInputs, ""), len(mixInputs))
		audioOut = "[aout]"
	}

	script := strings.TrimSuffix(b.String(), ";")
	return FilterGraph{
		Script:       script,
		VideoOut:     last,
		AudioOut:     audioOut,
		TotalSeconds: total,
	}
}
