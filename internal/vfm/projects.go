package vfm

import (
	"fmt"

	"github.com/dit-jay93/VersionManager/internal/model"
)

const defaultProjectColor = "#007AFF"

// CreateProject creates a grouping project.
func (r *Registry) CreateProject(name string, description string, color string) (*model.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if color == "" {
		color = defaultProjectColor
	}
	p := &model.Project{
		ID:          r.idgen.New(),
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   r.clock.Now(),
	}
	if err := r.catalog.CreateProject(p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return p, nil
}

// GetProject returns a project by id.
func (r *Registry) GetProject(projectID string) (*model.Project, error) {
	p, err := r.catalog.FindProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("finding project: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	return p, nil
}

// ListProjects returns all projects.
func (r *Registry) ListProjects() ([]*model.Project, error) {
	return r.catalog.ListProjects()
}

// UpdateProject updates a project's name, description or color. Empty
// fields keep their current value.
func (r *Registry) UpdateProject(projectID string, name, description, color string) (*model.Project, error) {
	p, err := r.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	if color != "" {
		p.Color = color
	}
	if err := r.catalog.UpdateProject(p); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return p, nil
}

// DeleteProject removes a project. Files assigned to it become unassigned;
// the files themselves are untouched.
func (r *Registry) DeleteProject(projectID string) error {
	if _, err := r.GetProject(projectID); err != nil {
		return err
	}
	return r.catalog.DeleteProject(projectID)
}

// AssignProject moves a file into a project; an empty projectID unassigns.
func (r *Registry) AssignProject(fileID string, projectID string) error {
	if _, err := r.GetFile(fileID); err != nil {
		return err
	}
	if projectID != "" {
		if _, err := r.GetProject(projectID); err != nil {
			return err
		}
	}
	return r.catalog.SetFileProject(fileID, projectID)
}

// ListFilesByProject returns the files assigned to a project.
func (r *Registry) ListFilesByProject(projectID string, includeArchived bool) ([]*model.TrackedFile, error) {
	return r.catalog.ListFilesByProject(projectID, includeArchived)
}

// ProjectFileCount returns how many files a project contains.
func (r *Registry) ProjectFileCount(projectID string) (int, error) {
	return r.catalog.ProjectFileCount(projectID)
}
