package cmd

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/reevehq/reeve-go/reeve"
)

// uploadConcurrency bounds parallel face uploads.
const uploadConcurrency = 5

// faceCmd groups face subcommands
var faceCmd = &cobra.Command{
	Use:   "face",
	Short: "Manage faces, run recognition and verification",
}

var faceListCmd = &cobra.Command{
	Use:      "list <person-id>",
	Short:    "List faces enrolled for a person",
	Args:     cobra.ExactArgs(1),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runFaceList,
}

var faceAddCmd = &cobra.Command{
	Use:      "add <person-id> <image.jpg> [image.jpg...]",
	Short:    "Enroll one or more face images for a person",
	Args:     cobra.MinimumNArgs(2),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runFaceAdd,
}

var faceDeleteCmd = &cobra.Command{
	Use:      "delete <face-id>",
	Short:    "Delete a face",
	Args:     cobra.ExactArgs(1),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runFaceDelete,
}

var faceRecognizeCmd = &cobra.Command{
	Use:      "recognize <image.jpg>",
	Short:    "Recognize a face against all enrolled persons",
	Args:     cobra.ExactArgs(1),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runFaceRecognize,
}

var faceVerifyCmd = &cobra.Command{
	Use:      "verify <person-id> <image.jpg>",
	Short:    "Verify a face against a specific person",
	Args:     cobra.ExactArgs(2),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runFaceVerify,
}

func init() {
	rootCmd.AddCommand(faceCmd)
	faceCmd.AddCommand(faceListCmd)
	faceCmd.AddCommand(faceAddCmd)
	faceCmd.AddCommand(faceDeleteCmd)
	faceCmd.AddCommand(faceRecognizeCmd)
	faceCmd.AddCommand(faceVerifyCmd)
}

func runFaceList(cmd *cobra.Command, args []string) error {
	personID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid person id %q", args[0])
	}

	resp, err := client.Face.List(cmd.Context(), personID)
	if err != nil {
		return err
	}

	faces := resp.ResultList()
	if len(faces) == 0 {
		fmt.Println("No faces enrolled.")
		return nil
	}

	fmt.Printf("Found %d faces:\n", len(faces))
	for _, item := range faces {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		face := reeve.FaceFromMap(m)
		fmt.Printf("• #%d", face.ID)
		if face.Path != "" {
			fmt.Printf("  %s", face.Path)
		}
		fmt.Println()
	}
	return nil
}

func runFaceAdd(cmd *cobra.Command, args []string) error {
	personID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid person id %q", args[0])
	}
	images := args[1:]

	// Upload concurrently with a bounded group; a single failure stops
	// the remaining uploads.
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(uploadConcurrency)

	var mu sync.Mutex
	var uploaded int

	for _, path := range images {
		path := path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			if _, err := client.Face.Add(ctx, personID, data); err != nil {
				return fmt.Errorf("failed to enroll %s: %w", path, err)
			}

			logger.Debug().Str("image", path).Int("person_id", personID).Msg("Face enrolled")
			mu.Lock()
			uploaded++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	imageText := "image"
	if uploaded != 1 {
		imageText = "images"
	}
	fmt.Printf("Enrolled %d %s for person #%d\n", uploaded, imageText, personID)
	return nil
}

func runFaceDelete(cmd *cobra.Command, args []string) error {
	faceID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid face id %q", args[0])
	}

	if _, err := client.Face.Delete(cmd.Context(), faceID); err != nil {
		return err
	}

	fmt.Printf("Deleted face #%d\n", faceID)
	return nil
}

func runFaceRecognize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	resp, err := client.Face.Recognize(cmd.Context(), data)
	if err != nil {
		return err
	}

	m := resp.ResultMap()
	if m == nil {
		fmt.Println("No match found.")
		return nil
	}

	match := reeve.IdentifyResultFromMap(m)
	fmt.Printf("Best match: %s\n", match.Name)
	fmt.Printf("  Score:     %d (threshold %d)\n", match.Score, match.Threshold)
	fmt.Printf("  Match:     %t\n", match.IsMatchFound)
	if match.Attributes != nil {
		if match.Attributes.Age != "" {
			fmt.Printf("  Age:       %s\n", match.Attributes.Age)
		}
		if match.Attributes.Gender != "" {
			fmt.Printf("  Gender:    %s\n", match.Attributes.Gender)
		}
	}
	return nil
}

func runFaceVerify(cmd *cobra.Command, args []string) error {
	personID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid person id %q", args[0])
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	resp, err := client.Face.Verify(cmd.Context(), data, personID)
	if err != nil {
		return err
	}

	result := reeve.VerificationResultFromMap(resp.ResultMap())
	if result.VerificationSucceeded {
		fmt.Printf("✓ Verified (score %d)\n", result.Score)
	} else {
		fmt.Printf("✗ Not verified (score %d)\n", result.Score)
	}
	return nil
}
