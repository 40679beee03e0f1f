package models

// PinataGroup is an immutable snapshot of a group as Pinata returns it.
// Groups are created upstream; this service only reads them.
type PinataGroup struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPublic  *bool  `json:"is_public"`
	CreatedAt string `json:"created_at"`
}

/*
GroupWithThumbnail is a group joined with a best-effort representative
image. A failed lookup leaves ThumbnailImage nil and PhotoCount zero,
which is a valid degraded entry rather than an error.
*/
type GroupWithThumbnail struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	IsPublic       *bool       `json:"is_public"`
	CreatedAt      string      `json:"created_at"`
	ThumbnailImage *PinataFile `json:"thumbnail_image"`
	PhotoCount     int         `json:"photo_count"`
}
