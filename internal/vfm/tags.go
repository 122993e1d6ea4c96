package vfm

import (
	"fmt"

	"github.com/dit-jay93/VersionManager/internal/model"
)

// AttachTag adds a tag to a file, creating the tag if it does not exist.
// The name is normalized by the catalog (lowercase, leading '#' stripped).
func (r *Registry) AttachTag(fileID string, tagName string) (*model.Tag, error) {
	if _, err := r.GetFile(fileID); err != nil {
		return nil, err
	}

	tag, err := r.catalog.GetOrCreateTag(tagName)
	if err != nil {
		return nil, fmt.Errorf("resolving tag: %w", err)
	}
	if err := r.catalog.AttachTag(tag.ID, fileID); err != nil {
		return nil, fmt.Errorf("attaching tag: %w", err)
	}
	return tag, nil
}

// DetachTag removes a tag from a file and cleans up tags with no
// remaining links.
func (r *Registry) DetachTag(fileID string, tagID string) error {
	if _, err := r.GetFile(fileID); err != nil {
		return err
	}

	if err := r.catalog.DetachTag(tagID, fileID); err != nil {
		return fmt.Errorf("detaching tag: %w", err)
	}
	if _, err := r.catalog.DeleteUnusedTags(); err != nil {
		r.logger.Warn("cleaning up unused tags", "error", err)
	}
	return nil
}

// ListFileTags returns the tags attached to a file.
func (r *Registry) ListFileTags(fileID string) ([]*model.Tag, error) {
	if _, err := r.GetFile(fileID); err != nil {
		return nil, err
	}
	return r.catalog.ListFileTags(fileID)
}

// ListTags returns every tag in the catalog.
func (r *Registry) ListTags() ([]*model.Tag, error) {
	return r.catalog.ListTags()
}

// ListFilesByTag returns all files carrying a tag.
func (r *Registry) ListFilesByTag(tagID string) ([]*model.TrackedFile, error) {
	return r.catalog.ListFilesByTag(tagID)
}
