// Package docker provides the optional running-container summary. The
// section degrades to a "not available" line when no daemon answers.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// Manager handles read-only Docker queries
type Manager struct {
	client *client.Client
}

// NewManager creates a new Docker manager
func NewManager() (*Manager, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &Manager{client: cli}, nil
}

// IsAvailable checks if the Docker daemon answers
func (m *Manager) IsAvailable(ctx context.Context) bool {
	_, err := m.client.Ping(ctx)
	return err == nil
}

// Close closes the Docker client
func (m *Manager) Close() error {
	return m.client.Close()
}

// ListRunning returns the running containers
func (m *Manager) ListRunning(ctx context.Context) (*ContainerList, error) {
	containers, err := m.client.ContainerList(ctx, types.ContainerListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	var result []ContainerInfo
	for _, c := range containers {
		info := ContainerInfo{
			ID:     shortID(c.ID),
			Image:  c.Image,
			State:  c.State,
			Status: c.Status,
		}
		if len(c.Names) > 0 {
			info.Name = strings.TrimPrefix(c.Names[0], "/")
		}
		result = append(result, info)
	}

	return &ContainerList{
		Containers: result,
		Total:      len(result),
	}, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
