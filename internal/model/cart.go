package model

// CartItem is one entry of the client-submitted cart. Pricing is
// pre-aggregated per item: Total already covers size and frame.
type CartItem struct {
	Artwork Artwork `json:"artwork"`
	Size    Size    `json:"size"`
	Frame   Frame   `json:"frame"`
	Total   float64 `json:"total"`
}

type Artwork struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

type Size struct {
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
}

type Frame struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// CartSnapshotItem is the flattened form stored in session metadata and
// copied onto the order at reconciliation time.
type CartSnapshotItem struct {
	ArtworkID      string  `json:"artworkId"`
	ArtworkTitle   string  `json:"artworkTitle"`
	ArtworkImage   string  `json:"artworkImage"`
	Size           string  `json:"size"`
	SizeDimensions string  `json:"sizeDimensions"`
	Frame          string  `json:"frame"`
	FrameLabel     string  `json:"frameLabel"`
	Price          float64 `json:"price"`
}

// DisplayFrame returns the frame label when set, falling back to the
// internal frame name.
func (i CartItem) DisplayFrame() string {
	if i.Frame.Label != "" {
		return i.Frame.Label
	}
	return i.Frame.Name
}
