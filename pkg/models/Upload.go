package models

// GroupInfo captures where an uploaded photo should land: an existing
// group, a group created on the fly, or no group at all.
type GroupInfo struct {
	CreateNewGroup bool    `json:"create_new_group"`
	GroupID        *string `json:"group_id"`
	GroupName      *string `json:"group_name"`
}

type PhotoUpload struct {
	File     []byte
	Filename string
	Metadata PhotoMetadata
	Group    GroupInfo
}

// PhotoMetadata is the structured metadata the upload form carries for
// each photo. Only Title and Category are required; everything else is
// omitted from the upstream keyvalues blob when empty.
type PhotoMetadata struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Camera       string `json:"camera"`
	Lens         string `json:"lens"`
	Iso          string `json:"iso"`
	Aperture     string `json:"aperture"`
	ShutterSpeed string `json:"shutterSpeed"`
}

// UploadedFile is the once-constructed record of an accepted upload.
type UploadedFile struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Cid     string  `json:"cid"`
	GroupID *string `json:"group_id"`
}
