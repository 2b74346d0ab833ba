package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reevehq/reeve-go/reeve"
)

var subjectBase64 bool

// subjectCmd groups subject verification subcommands
var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Face-to-face verification",
}

var subjectVerifyCmd = &cobra.Command{
	Use:   "verify <face1> <face2>",
	Short: "Verify whether two faces belong to the same subject",
	Long: `Verify whether two face images belong to the same subject.

Arguments are JPEG files by default. With --base64 they are taken as
base64-encoded image strings instead.`,
	Args:     cobra.ExactArgs(2),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runSubjectVerify,
}

func init() {
	rootCmd.AddCommand(subjectCmd)
	subjectCmd.AddCommand(subjectVerifyCmd)

	subjectVerifyCmd.Flags().BoolVar(&subjectBase64, "base64", false, "treat arguments as base64 strings instead of file paths")
}

func runSubjectVerify(cmd *cobra.Command, args []string) error {
	face1, err := subjectFaceFromArg(args[0])
	if err != nil {
		return err
	}
	face2, err := subjectFaceFromArg(args[1])
	if err != nil {
		return err
	}

	resp, err := client.Subject.VerifyFaces(cmd.Context(), face1, face2)
	if err != nil {
		return err
	}

	result := reeve.SubjectVerificationResultFromMap(resp.ResultMap())
	if result.SubjectNotSuitable {
		fmt.Println("✗ Subject not suitable for verification.")
		return nil
	}
	if result.VerificationSucceeded {
		fmt.Printf("✓ Same subject (score %d)\n", result.Score)
	} else {
		fmt.Printf("✗ Different subjects (score %d)\n", result.Score)
	}
	return nil
}

func subjectFaceFromArg(arg string) (reeve.SubjectFace, error) {
	if subjectBase64 {
		return reeve.FaceBase64(arg), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return reeve.SubjectFace{}, fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return reeve.FaceBytes(data), nil
}
