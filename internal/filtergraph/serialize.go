package filtergraph

import (
	"fmt"
	"strings"

	"clipforge/internal/timeline"
)

// Serialized carries the textual form of a graph plus the labels of its final
// streams. AudioLabel is empty when the graph carries no audio.
type Serialized struct {
	FilterComplex string
	VideoLabel    string
	AudioLabel    string
}

// Serialize renders the graph into ffmpeg filter_complex syntax. This is the
// only place encoder syntax is produced; everything upstream works on typed
// nodes.
func (g Graph) Serialize() Serialized {
	var chains []string

	videoLabels := make([]string, len(g.Transforms))
	audioLabels := make([]string, len(g.Transforms))
	for i, node := range g.Transforms {
		videoLabels[i] = fmt.Sprintf("v%d", i)
		chains = append(chains, node.videoChain(videoLabels[i], g.FrameRate))
		if g.WithAudio {
			audioLabels[i] = fmt.Sprintf("a%d", i)
			chains = append(chains, node.audioChain(audioLabels[i]))
		}
	}

	currentV := videoLabels[0]
	currentA := audioLabels[0]
	for i, boundary := range g.Boundaries {
		nextV := videoLabels[i+1]
		nextA := audioLabels[i+1]
		outV := fmt.Sprintf("m%dv", i)
		outA := fmt.Sprintf("m%da", i)

		if boundary.IsCut() {
			if g.WithAudio {
				chains = append(chains, fmt.Sprintf("[%s][%s][%s][%s]concat=n=2:v=1:a=1[%s][%s]",
					currentV, currentA, nextV, nextA, outV, outA))
				currentA = outA
			} else {
				chains = append(chains, fmt.Sprintf("[%s][%s]concat=n=2:v=1:a=0[%s]", currentV, nextV, outV))
			}
			currentV = outV
			continue
		}

		tr := boundary.Transition
		chains = append(chains, fmt.Sprintf("[%s][%s]xfade=transition=%s:duration=%s:offset=%s[%s]",
			currentV, nextV, xfadeName(tr.Kind), formatSeconds(tr.Duration), formatSeconds(tr.Offset), outV))
		currentV = outV
		if g.WithAudio {
			chains = append(chains, fmt.Sprintf("[%s][%s]acrossfade=d=%s[%s]",
				currentA, nextA, formatSeconds(tr.Duration), outA))
			currentA = outA
		}
	}

	return Serialized{
		FilterComplex: strings.Join(chains, ";"),
		VideoLabel:    currentV,
		AudioLabel:    currentA,
	}
}

func (n TransformNode) videoChain(out string, frameRate int) string {
	var steps []string
	steps = append(steps, fmt.Sprintf("trim=start=%s:end=%s", formatSeconds(n.TrimStart), formatSeconds(n.TrimEnd)))
	steps = append(steps, "setpts=PTS-STARTPTS")

	switch n.Mode {
	case ScalePad:
		steps = append(steps,
			fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", n.TargetW, n.TargetH),
			fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black", n.TargetW, n.TargetH),
		)
	default:
		if !n.Crop.IsFullFrame(n.SourceW, n.SourceH) {
			steps = append(steps, fmt.Sprintf("crop=%d:%d:%d:%d", n.Crop.Width, n.Crop.Height, n.Crop.OffsetX, n.Crop.OffsetY))
		}
		steps = append(steps, fmt.Sprintf("scale=%d:%d", n.TargetW, n.TargetH))
	}

	steps = append(steps, "setsar=1", fmt.Sprintf("fps=%d", frameRate), "format=yuv420p")
	return fmt.Sprintf("[%d:v]%s[%s]", n.Input, strings.Join(steps, ","), out)
}

func (n TransformNode) audioChain(out string) string {
	return fmt.Sprintf("[%d:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[%s]",
		n.Input, formatSeconds(n.TrimStart), formatSeconds(n.TrimEnd), out)
}

func xfadeName(kind timeline.TransitionType) string {
	switch kind {
	case timeline.TransitionCrossdissolve:
		return "dissolve"
	default:
		return "fade"
	}
}

// formatSeconds renders a duration with millisecond precision and no
// trailing zeros, matching what ffmpeg accepts.
func formatSeconds(value float64) string {
	text := fmt.Sprintf("%.3f", value)
	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, ".")
}
