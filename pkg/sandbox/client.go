// Package sandbox runs generate directives inside locked-down Docker
// containers instead of directly on the host. It is opt-in; the host
// executor remains the default.
package sandbox

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// CheckAvailability verifies Docker is installed and reachable before a
// sandboxed run starts.
func CheckAvailability(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("docker not available: %w", err)
	}
	defer cli.Close()

	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker not available: %w", err)
	}
	return nil
}

// PullImage ensures the sandbox image is present locally, pulling it when
// missing.
func PullImage(ctx context.Context, image string) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("create docker client: %w", err)
	}
	defer cli.Close()

	if _, _, err := cli.ImageInspectWithRaw(ctx, image); err == nil {
		return nil
	}

	reader, err := cli.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", image, err)
	}
	defer reader.Close()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("pull image %s: %w", image, err)
	}
	return nil
}
