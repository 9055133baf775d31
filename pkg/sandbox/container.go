package sandbox

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/strslice"
	"github.com/docker/docker/client"
)

// workspacePath is where the module's directory is mounted inside the
// container; it doubles as the working directory.
const workspacePath = "/workspace"

// ContainerConfig holds everything needed to run one directive in a
// container.
type ContainerConfig struct {
	Image       string
	Program     string
	Args        []string
	Env         []string
	ModuleDir   string
	MemoryLimit string
	CPULimit    int
	Timeout     time.Duration
}

// ContainerResult holds the captured output and status of a finished
// container.
type ContainerResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// RunContainer executes one directive in a restricted container: no
// network, all capabilities dropped, resource limits applied, and the
// module's directory mounted read-write at /workspace so generators can
// write their output next to the source. A non-zero exit status is a
// result, not an error.
func RunContainer(ctx context.Context, cfg ContainerConfig) (ContainerResult, error) {
	start := time.Now()
	var result ContainerResult

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return result, fmt.Errorf("create docker client: %w", err)
	}
	defer cli.Close()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	containerConfig := &container.Config{
		Image:      cfg.Image,
		Cmd:        strslice.StrSlice(append([]string{cfg.Program}, cfg.Args...)),
		Env:        cfg.Env,
		WorkingDir: workspacePath,
	}

	hostConfig := &container.HostConfig{
		NetworkMode: "none",
		Resources: container.Resources{
			Memory:   parseMemoryLimit(cfg.MemoryLimit),
			NanoCPUs: int64(cfg.CPULimit) * 1000000000,
		},
		Mounts: []mount.Mount{
			{
				Type:   mount.TypeBind,
				Source: cfg.ModuleDir,
				Target: workspacePath,
			},
		},
		CapDrop:     strslice.StrSlice{"ALL"},
		SecurityOpt: []string{"no-new-privileges"},
		Tmpfs: map[string]string{
			"/tmp": "exec",
		},
	}

	resp, err := cli.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return result, fmt.Errorf("create container: %w", err)
	}
	defer cli.ContainerRemove(context.Background(), resp.ID, types.ContainerRemoveOptions{Force: true})

	if err := cli.ContainerStart(ctx, resp.ID, types.ContainerStartOptions{}); err != nil {
		return result, fmt.Errorf("start container: %w", err)
	}

	statusCh, errCh := cli.ContainerWait(ctx, resp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return result, fmt.Errorf("wait for container: %w", err)
		}
	case status := <-statusCh:
		result.ExitCode = int(status.StatusCode)
	case <-ctx.Done():
		result.ExitCode = 124
		return result, fmt.Errorf("directive timed out after %v", cfg.Timeout)
	}

	logReader, err := cli.ContainerLogs(ctx, resp.ID, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return result, fmt.Errorf("read container logs: %w", err)
	}
	defer logReader.Close()

	var stdout, stderr strings.Builder
	if err := demuxLogs(logReader, &stdout, &stderr); err != nil {
		return result, fmt.Errorf("read container logs: %w", err)
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Duration = time.Since(start)
	return result, nil
}

// parseMemoryLimit converts a memory limit string such as "512m" or "2g"
// to bytes. Unknown formats mean no limit.
func parseMemoryLimit(limit string) int64 {
	if limit == "" {
		return 0
	}
	if strings.HasSuffix(limit, "m") || strings.HasSuffix(limit, "M") {
		var mb int64
		fmt.Sscanf(limit, "%d", &mb)
		return mb * 1024 * 1024
	}
	if strings.HasSuffix(limit, "g") || strings.HasSuffix(limit, "G") {
		var gb int64
		fmt.Sscanf(limit, "%d", &gb)
		return gb * 1024 * 1024 * 1024
	}
	return 0
}

// demuxLogs separates stdout and stderr from Docker's multiplexed log
// stream. Each frame carries an 8-byte header: stream type, three zero
// bytes, then a big-endian payload size.
func demuxLogs(reader io.Reader, stdout, stderr io.Writer) error {
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(reader, header); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		size := int(header[4])<<24 | int(header[5])<<16 | int(header[6])<<8 | int(header[7])
		payload := make([]byte, size)
		if _, err := io.ReadFull(reader, payload); err != nil {
			return err
		}

		switch header[0] {
		case 1:
			stdout.Write(payload)
		case 2:
			stderr.Write(payload)
		}
	}
}
