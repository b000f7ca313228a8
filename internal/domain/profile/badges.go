package profile

// Badge is derived on every profile read, never stored.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BadgesFor derives the badge set from the upload count and the admin
// flag. Thresholds are cumulative: 5 uploads earns both First Upload
// and Knowledge Sharer.
func BadgesFor(uploadCount int64, isAdmin bool) []Badge {
	badges := []Badge{}

	if uploadCount >= 1 {
		badges = append(badges, Badge{Name: "First Upload", Description: "Uploaded first file"})
	}
	if uploadCount >= 5 {
		badges = append(badges, Badge{Name: "Knowledge Sharer", Description: "Uploaded 5 files"})
	}
	if uploadCount >= 10 {
		badges = append(badges, Badge{Name: "Top Contributor", Description: "Uploaded 10 files"})
	}
	if uploadCount >= 20 {
		badges = append(badges, Badge{Name: "Elite Member", Description: "Uploaded 20 files"})
	}
	if isAdmin {
		badges = append(badges, Badge{Name: "Administrator", Description: "Platform Admin"})
	}

	return badges
}
