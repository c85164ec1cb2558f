package rmenu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/hansbonini/rmenutools/pkg/common"
)

// DefaultTool is the ISO 9660 authoring program.
const DefaultTool = "mkisofs"

var (
	ErrToolNotFound = errors.New("unable to find image authoring tool")
	ErrListMissing  = errors.New("list file not found, run scan first")
	ErrInvalidMenu  = errors.New("invalid menu type")
)

// MenuKind selects which menu binary boots from the image.
type MenuKind int

const (
	MenuClassic MenuKind = 1 // RMENU
	MenuKai     MenuKind = 2 // RMENU Kai / Pseudo Saturn Kai
)

var _ pflag.Value = (*MenuKind)(nil)

func (k *MenuKind) String() string {
	return fmt.Sprintf("%d", int(*k))
}

// Set parses "1"/"rmenu" or "2"/"kai".
func (k *MenuKind) Set(value string) error {
	switch strings.ToLower(value) {
	case "1", "rmenu", "classic":
		*k = MenuClassic
	case "2", "kai", "rmenukai":
		*k = MenuKai
	default:
		return fmt.Errorf("%w: %q (want 1 or 2)", ErrInvalidMenu, value)
	}
	return nil
}

func (k *MenuKind) Type() string {
	return "menu"
}

// Binary is the menu file copied to the boot binary.
func (k MenuKind) Binary() (string, error) {
	switch k {
	case MenuClassic:
		return RMenuBinary, nil
	case MenuKai:
		return KaiBinary, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidMenu, int(k))
	}
}

// ImageArgs returns the authoring tool arguments for the menu image.
func ImageArgs(l Layout) []string {
	return []string{
		"-sysid", "SEGA SATURN",
		"-V", "RMENU",
		"-volset", "RMENU",
		"-publisher", "SEGA ENTERPRISES, LTD.",
		"-p", "SEGA ENTREPRISES, LTD.",
		"-A", "RMENU",
		"-abstract", "ABS.TXT",
		"-copyright", "CPY.TXT",
		"-biblio", "BIB.TXT",
		"-G", "IP.BIN",
		"-full-iso9660-filenames",
		"-input-charset", "iso8859-1",
		"-o", l.ImagePath(),
		l.MenuDir(),
	}
}

// BuildImage copies the selected menu binary to the boot binary and runs
// the authoring tool once inside the menu directory. The tool's exit status
// decides success; nothing is retried.
func BuildImage(ctx context.Context, l Layout, kind MenuKind, tool string) error {
	if tool == "" {
		tool = DefaultTool
	}
	toolPath, err := exec.LookPath(tool)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}

	if _, err := os.Stat(l.ListPath()); err != nil {
		return fmt.Errorf("%w: %s", ErrListMissing, l.ListPath())
	}

	binary, err := kind.Binary()
	if err != nil {
		return err
	}
	src := filepath.Join(l.MenuDir(), binary)
	if err := copyFile(src, filepath.Join(l.MenuDir(), BootBinary)); err != nil {
		return common.FormatError(common.ErrFailedToCopyMenu, err)
	}
	common.LogInfo(common.InfoMenuBinarySelected, src)

	args := ImageArgs(l)
	common.LogInfo(common.InfoRunningTool, toolPath, args)

	cmd := exec.CommandContext(ctx, toolPath, args...)
	cmd.Dir = l.MenuDir()
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return common.FormatError(common.ErrAuthoringToolFailed,
			fmt.Errorf("%w: %s", err, strings.TrimSpace(output.String())))
	}
	common.LogDebug("%s output: %s", tool, strings.TrimSpace(output.String()))

	common.LogInfo(common.InfoImageAuthored, l.ImagePath())
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
