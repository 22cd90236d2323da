package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable shell script and returns its path.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + body
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// FakeFFmpeg returns a stub encoder that writes a nonempty file at its final
// argument and exits zero.
func FakeFFmpeg(t testing.TB, dir string) string {
	t.Helper()
	return WriteScript(t, dir, "ffmpeg", `for last; do :; done
printf 'encoded' > "$last"
exit 0
`)
}

// FakeFFmpegFailing returns a stub encoder that prints the given text to
// stderr and exits nonzero without producing output.
func FakeFFmpegFailing(t testing.TB, dir, stderr string) string {
	t.Helper()
	return WriteScript(t, dir, "ffmpeg", fmt.Sprintf(`echo %q >&2
exit 1
`, stderr))
}

// FakeFFmpegHanging returns a stub encoder that writes a partial file at its
// final argument and then sleeps until killed.
func FakeFFmpegHanging(t testing.TB, dir string) string {
	t.Helper()
	return WriteScript(t, dir, "ffmpeg", `for last; do :; done
printf 'partial' > "$last"
sleep 60
`)
}

// FakeFFmpegEmpty returns a stub encoder that exits zero without writing any
// output file.
func FakeFFmpegEmpty(t testing.TB, dir string) string {
	t.Helper()
	return WriteScript(t, dir, "ffmpeg", "exit 0\n")
}

// FakeFFprobe returns a stub prober that emits a fixed JSON document for any
// input, describing one video stream with the given dimensions and duration
// plus one audio stream.
func FakeFFprobe(t testing.TB, dir string, width, height int, duration float64) string {
	t.Helper()
	body := fmt.Sprintf(`cat <<'EOF'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","width":%d,"height":%d},{"index":1,"codec_type":"audio","codec_name":"aac"}],"format":{"duration":"%.3f","size":"2048"}}
EOF
exit 0
`, width, height, duration)
	return WriteScript(t, dir, "ffprobe", body)
}

// FakeFFprobeSilent is FakeFFprobe without the audio stream.
func FakeFFprobeSilent(t testing.TB, dir string, width, height int, duration float64) string {
	t.Helper()
	body := fmt.Sprintf(`cat <<'EOF'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","width":%d,"height":%d}],"format":{"duration":"%.3f","size":"2048"}}
EOF
exit 0
`, width, height, duration)
	return WriteScript(t, dir, "ffprobe", body)
}
