package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/plumber/internal/application/system"
)

// Replayer handles input playback from recorded data.
// It is a system.InputSource; past the last frame it returns idle input.
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeReplay(file)
}

// DecodeReplay reads replay data from r
func DecodeReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// Next returns the input for the current frame and advances.
// ok is false once every frame has been played.
func (r *Replayer) Next() (in system.InputState, ok bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.InputState(), true
}

// GetInput implements system.InputSource
func (r *Replayer) GetInput() system.InputState {
	in, _ := r.Next()
	return in
}

// Done returns true once every frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Campaign returns the campaign the replay was recorded on
func (r *Replayer) Campaign() string {
	return r.data.Campaign
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// InputState converts a recorded frame back to live input
func (fi FrameInput) InputState() system.InputState {
	return system.InputState{
		Left:         fi.L,
		Right:        fi.R,
		JumpPressed:  fi.JP,
		JumpHeld:     fi.JH,
		JumpReleased: fi.JR,
		Pause:        fi.P,
		Confirm:      fi.C,
		Menu:         fi.M,
		MouseX:       fi.MX,
		MouseY:       fi.MY,
		MouseClick:   fi.MC,
	}
}

// NewFrameInput records live input as frame f
func NewFrameInput(f int, in system.InputState) FrameInput {
	return FrameInput{
		F:  f,
		L:  in.Left,
		R:  in.Right,
		JP: in.JumpPressed,
		JH: in.JumpHeld,
		JR: in.JumpReleased,
		P:  in.Pause,
		C:  in.Confirm,
		M:  in.Menu,
		MX: in.MouseX,
		MY: in.MouseY,
		MC: in.MouseClick,
	}
}

// CreateTestReplayData creates replay data for testing: a confirm press to
// leave the menu, then idle frames
func CreateTestReplayData(frames int, mouseX, mouseY int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Campaign:  "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F:  i,
			MX: mouseX,
			MY: mouseY,
		}
	}
	if frames > 0 {
		data.Frames[0].C = true
	}

	return data
}
