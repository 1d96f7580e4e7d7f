package services

import "inkwell-cms/models"

// NextVersionNumber returns the number the next version of postID gets:
// the count of its existing versions plus one.
func NextVersionNumber(postID uint, existing []models.PostVersion) int {
	n := 0
	for i := range existing {
		if existing[i].PostID == postID {
			n++
		}
	}
	return n + 1
}
