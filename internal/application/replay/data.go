package replay

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	JP bool `json:"jp,omitempty"` // JumpPressed
	JH bool `json:"jh,omitempty"` // JumpHeld
	JR bool `json:"jr,omitempty"` // JumpReleased
	P  bool `json:"p,omitempty"`  // Pause
	C  bool `json:"c,omitempty"`  // Confirm
	M  bool `json:"m,omitempty"`  // Menu
	MX int  `json:"mx"`           // MouseX
	MY int  `json:"my"`           // MouseY
	MC bool `json:"mc,omitempty"` // MouseClick
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Campaign  string       `json:"campaign"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Version of the replay format written by the recorder
const Version = "2.0"
