package handproto

// Hello is the first message a tracker sends after connecting.
type Hello struct {
	V    int    `json:"v" jsonschema:"title=Protocol version,description=Protocol revision the tracker speaks"`
	Name string `json:"name,omitempty" jsonschema:"description=Optional tracker identifier shown in logs"`
}

// Welcome is the server reply to Hello.
type Welcome struct {
	V       int    `json:"v" jsonschema:"title=Protocol version,description=Protocol revision the game accepted"`
	Game    string `json:"game" jsonschema:"description=Identifies the receiving game"`
	InputHz int    `json:"inputHz" jsonschema:"description=Sample rate the game expects"`
}

// Input is one palm sample. Coordinates are normalized to the tracker's
// camera frame: (0,0) is the top-left corner, (1,1) the bottom-right. The
// game maps them onto the play area, so the tracker needs no knowledge of
// window size.
type Input struct {
	X     float64 `json:"x" jsonschema:"title=Palm X,description=Normalized horizontal palm position in 0..1"`
	Y     float64 `json:"y" jsonschema:"title=Palm Y,description=Normalized vertical palm position in 0..1"`
	Pinch bool    `json:"pinch,omitempty" jsonschema:"description=True while thumb and index finger are pinched together"`
}
