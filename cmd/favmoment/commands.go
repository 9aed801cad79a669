package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"favmoment/internal"
	"favmoment/internal/device"
	"favmoment/internal/screen"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	screenTitle            = "My Favorite Moment"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "favmoment",
		Short: "Keep one favorite photo with a caption",
		Long: `favmoment stores a single profile: a photo copied into private storage
and a caption, kept in a local SQLite database.

Configuration is read from FAVMOMENT_* environment variables or from the
YAML file named by FAVMOMENT_CONFIG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mirror log output to stderr")

	root.AddCommand(newShowCmd(), newSaveCmd(), newResetCmd())
	return root
}

// withApp builds and starts the application, runs fn, and shuts it down.
// With readOnly set, a profile that fails to load is logged by the screen
// and fn sees the empty screen; commands that write refuse to run instead.
func withApp(ctx context.Context, picker screen.Picker, readOnly bool, fn func(*internal.Application) error) error {
	opts := []internal.Option{}
	if picker != nil {
		opts = append(opts, internal.WithPicker(picker))
	}
	if verbose {
		opts = append(opts, internal.WithConsole(os.Stderr))
	}

	app, err := internal.NewApp(opts...)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: cleanup error:", err)
		}
	}()

	if err := app.Start(ctx); err != nil && !readOnly {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	return fn(app)
}

type stateView struct {
	HasProfile      bool   `yaml:"hasProfile"`
	AvatarURI       string `yaml:"avatarUri"`
	Caption         string `yaml:"caption"`
	CaptionEditable bool   `yaml:"captionEditable"`
	ShowSave        bool   `yaml:"showSave"`
	ShowReset       bool   `yaml:"showReset"`
}

func newStateView(s screen.State) stateView {
	return stateView{
		HasProfile:      s.HasProfile,
		AvatarURI:       s.AvatarURI,
		Caption:         s.Caption,
		CaptionEditable: s.CaptionEditable(),
		ShowSave:        s.ShowSave(),
		ShowReset:       s.ShowReset(),
	}
}

func renderState(w io.Writer, s screen.State, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newStateView(s)); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		avatar := s.AvatarURI
		if avatar == "" {
			avatar = "(placeholder)"
		}
		fmt.Fprintln(w, screenTitle)
		fmt.Fprintf(w, "Avatar:  %s\n", avatar)
		if s.HasProfile {
			fmt.Fprintf(w, "Caption: %s\n", s.Caption)
		} else {
			fmt.Fprintln(w, "Caption: (not set)")
			fmt.Fprintln(w, "No profile saved yet. Use 'favmoment save'.")
		}
		if s.ShowReset() {
			fmt.Fprintln(w, "Reset is enabled. Use 'favmoment reset'.")
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or yaml)", format)
	}
}

func newShowCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), nil, true, func(app *internal.Application) error {
				return renderState(cmd.OutOrStdout(), app.Screen.State(), output)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")
	return cmd
}

func newSaveCmd() *cobra.Command {
	var image, capture, caption string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a photo and caption as the profile",
		Long: `Save a photo and caption as the profile.

The photo is given either as a library pick (--image) or as a camera
capture (--capture). When --caption is omitted and stdin is a terminal,
the caption is prompted for.

Examples:
  favmoment save --image ~/Pictures/sunset.jpg --caption "Sunset"
  favmoment save --capture /tmp/capture.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if image != "" && capture != "" {
				return errors.New("use either --image or --capture, not both")
			}
			picker := &device.FilePicker{LibraryPath: image, CapturePath: capture}

			return withApp(cmd.Context(), picker, false, func(app *internal.Application) error {
				ctx := cmd.Context()
				if app.Screen.State().HasProfile {
					return screen.ErrProfileLocked
				}

				app.Screen.OpenPicker()
				var err error
				if capture != "" {
					_, err = app.Screen.TakePhoto(ctx)
				} else {
					_, err = app.Screen.ChooseImage(ctx)
				}
				if err != nil {
					return err
				}
				app.Screen.ClosePicker()

				if !cmd.Flags().Changed("caption") && term.IsTerminal(int(os.Stdin.Fd())) {
					caption, err = promptCaption(cmd.InOrStdin(), cmd.OutOrStdout())
					if err != nil {
						return err
					}
				}
				if err := app.Screen.SetCaption(caption); err != nil {
					return err
				}

				if err := app.Screen.Save(ctx); err != nil {
					return err
				}
				return renderState(cmd.OutOrStdout(), app.Screen.State(), "text")
			})
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "Path of the photo to pick from the library")
	cmd.Flags().StringVar(&capture, "capture", "", "Path of a photo taken with the camera")
	cmd.Flags().StringVar(&caption, "caption", "", "Caption for the photo")
	return cmd
}

func promptCaption(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter caption: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read caption: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved profile",
		Long: `Delete the saved profile so a new one can be saved.

Reset is only available when FAVMOMENT_SHOW_RESET=true.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), nil, false, func(app *internal.Application) error {
				if err := app.Screen.Reset(cmd.Context()); err != nil {
					if errors.Is(err, screen.ErrResetDisabled) {
						return fmt.Errorf("%w (set FAVMOMENT_SHOW_RESET=true to enable)", err)
					}
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Profile reset.")
				return nil
			})
		},
	}
}
