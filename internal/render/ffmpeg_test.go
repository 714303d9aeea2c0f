package render

import (
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	f := &FFmpeg{CrossfadeSeconds: 0.3}
	job := sampleJob()
	args := f.buildArgs(job, "/out/1700000000.mp4")

	joined := strings.Join(args, " ")

	wantFragments := []string{
		"-loop 1 -t 8.000 -i /m/a.jpg",
		"-loop 1 -t 8.000 -i /m/b.jpg",
		"-i /m/clip.mp4",
		"-i /m/track.mp3",
		"-map [ov2]",
		"-map [aout]",
		"-c:v libx264",
		"-pix_fmt yuv420p",
		"-crf 23 -preset medium",
		"-r 30",
		"-t 21.000",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(joined, fragment) {
			t.Errorf("args missing %q\nargs: %s", fragment, joined)
		}
	}
	if strings.Contains(joined, "-loop 1 -t 5.000 -i /m/clip.mp4") {
		t.Error("video input must not be looped like an image")
	}
	if args[len(args)-1] != "/out/1700000000.mp4" {
		t.Errorf("output path must be last, got %q", args[len(args)-1])
	}
}

func TestBuildArgsCustomEncoderSkipsCRF(t *testing.T) {
	f := &FFmpeg{Encoder: "h264_nvenc"}
	args := f.buildArgs(sampleJob(), "/out/a.mp4")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-c:v h264_nvenc") {
		t.Fatalf("encoder not applied: %s", joined)
	}
	if strings.Contains(joined, "-crf") {
		t.Fatal("crf settings only apply to libx264")
	}
}
