package ffprobe

import (
	"encoding/json"
	"testing"
)

const videoJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720, "duration": "12.480000"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2, "duration": "12.480000"}
  ],
  "format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "12.512000", "format_name": "mov,mp4,m4a"}
}`

const imageJSON = `{
  "streams": [
    {"index": 0, "codec_name": "png", "codec_type": "video", "width": 640, "height": 480}
  ],
  "format": {"filename": "photo.png", "nb_streams": 1, "format_name": "png_pipe"}
}`

func TestResultAccessors(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(videoJSON), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := result.DurationSeconds(); got != 12.512 {
		t.Fatalf("DurationSeconds = %v, want 12.512", got)
	}
	w, h := result.PixelSize()
	if w != 1280 || h != 720 {
		t.Fatalf("PixelSize = %dx%d, want 1280x720", w, h)
	}
	if !result.HasAudio() {
		t.Fatal("expected HasAudio for video with aac stream")
	}
}

func TestResultImageWithoutDuration(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(imageJSON), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("still image should report zero duration, got %v", got)
	}
	w, h := result.PixelSize()
	if w != 640 || h != 480 {
		t.Fatalf("PixelSize = %dx%d, want 640x480", w, h)
	}
	if result.HasAudio() {
		t.Fatal("image should not report audio")
	}
}

func TestDurationFallsBackToStream(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio", Duration: "33.120000"}},
	}
	if got := result.DurationSeconds(); got != 33.12 {
		t.Fatalf("DurationSeconds = %v, want 33.12", got)
	}
}

func TestParseFloatRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "N/A", "-3", "nan"} {
		if got := parseFloat(bad); got != 0 {
			t.Errorf("parseFloat(%q) = %v, want 0", bad, got)
		}
	}
}
