package main

import (
	"os"

	"github.com/sagarc03/apitour/clientcli"
	"github.com/spf13/cobra"
)

var (
	uploadMultiple    bool
	uploadContentType string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-path>...",
	Short: "Upload files to the server",
	Long: `Upload files as multipart/form-data.

A single file is sent to POST /file; several files, or --multiple, go to
POST /files. The server echoes each file's name and content type.

Examples:
  apitour-cli upload ./notes.txt
  apitour-cli upload ./a.png ./b.png
  apitour-cli upload --content-type application/json ./data`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVarP(&uploadMultiple, "multiple", "m", false, "always use POST /files")
	uploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "override content-type")
}

func runUpload(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	files, err := client.Upload(cmd.Context(), clientcli.UploadOptions{
		Paths:       args,
		ContentType: uploadContentType,
		Multiple:    uploadMultiple,
	})
	if err != nil {
		return err
	}

	return getFormatter().FormatUploads(os.Stdout, files)
}
