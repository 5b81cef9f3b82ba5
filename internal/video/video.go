package video

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"

	"github.com/NicholasChin28/osu/internal/engine"
)

// FrameRenderer draws a layout frame. Release is called once the pixels
// have been written.
type FrameRenderer interface {
	OutputSize() image.Point
	Render(f engine.Frame) *image.RGBA
	Release(img *image.RGBA)
}

// Params controls the encoded preview video
type Params struct {
	FPS     int
	Encoder string // libx264, h264_nvenc, h264_videotoolbox
	Quality int    // 0 picks a default for the encoder
}

type FFmpegEncoder struct {
	Binary string
}

func NewFFmpegEncoder() *FFmpegEncoder {
	return &FFmpegEncoder{Binary: "ffmpeg"}
}

// Available reports whether the ffmpeg binary can be found
func (e *FFmpegEncoder) Available() bool {
	_, err := exec.LookPath(e.Binary)
	return err == nil
}

// EncodeFrames renders every frame and pipes the raw RGBA pixels into a
// single ffmpeg process writing videoPath.
func (e *FFmpegEncoder) EncodeFrames(ctx context.Context, r FrameRenderer, frames []engine.Frame, videoPath string, params Params) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	size := r.OutputSize()
	args := e.buildFFmpegArgs(size.X, size.Y, videoPath, params)

	cmd := exec.CommandContext(ctx, e.Binary, args...)
	var out strings.Builder
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	for _, f := range frames {
		img := r.Render(f)
		err := writeRawRGBA(stdin, img)
		r.Release(img)
		if err != nil {
			stdin.Close()
			waitErr := cmd.Wait()
			return writeFrameError(f.Index, err, waitErr, out.String())
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, out.String())
	}
	return nil
}

// writeFrameError reports a failed pipe write together with the reason
// ffmpeg gave for exiting, which usually explains the broken pipe.
func writeFrameError(index int, writeErr, waitErr error, output string) error {
	if waitErr == nil {
		return fmt.Errorf("write frame %d: %w, output: %s", index, writeErr, output)
	}
	return fmt.Errorf("write frame %d: %w (ffmpeg: %v), output: %s", index, writeErr, waitErr, output)
}

func (e *FFmpegEncoder) buildFFmpegArgs(width, height int, videoPath string, params Params) []string {
	encoder := params.Encoder
	if encoder == "" {
		encoder = "libx264"
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-c:v", encoder,
	}

	quality := params.Quality
	switch encoder {
	case "h264_videotoolbox":
		if quality == 0 {
			quality = 75
		}
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		if quality == 0 {
			quality = 28
		}
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		if quality == 0 {
			quality = 23
		}
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	return append(args, videoPath)
}

// writeRawRGBA writes tightly packed RGBA rows, repacking if img has padding
func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}
	_, err := w.Write(img.Pix)
	return err
}
