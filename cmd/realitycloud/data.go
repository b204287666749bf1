package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/realitydata"
	"github.com/realitycloud/realitycloud/pkg/scene"
)

// data flags
var (
	dataITwin        string
	dataName         string
	dataType         string
	dataRootDocument string
	dataExtensions   []string
	dataRecursive    bool
	dataTypesFilter  []string
	dataTop          int
	dataTableFile    string
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage reality-data and their container content",
}

func init() {
	dataCreateCmd.Flags().StringVar(&dataITwin, "itwin", "", "iTwin id (required)")
	dataCreateCmd.Flags().StringVar(&dataName, "name", "", "display name (required)")
	dataCreateCmd.Flags().StringVar(&dataType, "type", "", "reality-data type (required)")
	dataCreateCmd.Flags().StringVar(&dataRootDocument, "root-document", "", "root document path inside the container")
	dataCreateCmd.MarkFlagRequired("itwin")
	dataCreateCmd.MarkFlagRequired("name")
	dataCreateCmd.MarkFlagRequired("type")

	dataUploadCmd.Flags().StringVar(&dataITwin, "itwin", "", "iTwin id")
	dataUploadCmd.Flags().StringSliceVar(&dataExtensions, "ext", nil, "only upload files with these extensions")
	dataUploadCmd.Flags().BoolVar(&dataRecursive, "recursive", false, "include subdirectories of a directory source")

	dataDownloadCmd.Flags().StringVar(&dataITwin, "itwin", "", "iTwin id")
	dataDownloadCmd.Flags().StringVar(&dataTableFile, "table", "", "reference table for rewriting downloaded scenes")

	dataListCmd.Flags().StringVar(&dataITwin, "itwin", "", "restrict to one iTwin")
	dataListCmd.Flags().StringSliceVar(&dataTypesFilter, "types", nil, "restrict to these reality-data types")
	dataListCmd.Flags().IntVar(&dataTop, "top", 0, "page size (1-1000)")

	dataMvCmd.Flags().StringVar(&dataITwin, "itwin", "", "target iTwin id (required)")
	dataMvCmd.MarkFlagRequired("itwin")

	dataCmd.AddCommand(dataCreateCmd, dataUploadCmd, dataDownloadCmd, dataListCmd, dataRmCmd, dataMvCmd)
}

// respErr renders a failed response as a command error.
func respErr(status int, err *apierr.Error) error {
	return fmt.Errorf("%s (HTTP %d)", err.Error(), status)
}

// transferBar reports transfer progress on stderr.
func transferBar(label string) func(float64) bool {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return func(pct float64) bool {
		bar.Set(int(pct))
		return true
	}
}

var dataCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new reality-data",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newDataClient()
		if err != nil {
			return err
		}
		resp := client.Create(cmd.Context(), realitydata.RealityData{
			ITwinID:      dataITwin,
			DisplayName:  dataName,
			Type:         dataType,
			RootDocument: dataRootDocument,
		})
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		fmt.Println(resp.Value.ID)
		return nil
	},
}

var dataUploadCmd = &cobra.Command{
	Use:   "upload <id> <source>",
	Short: "Upload a file or directory into a reality-data container",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newDataClient()
		if err != nil {
			return err
		}
		resp := client.UploadRealityData(cmd.Context(), args[0], args[1], realitydata.TransferOptions{
			ITwinID:    dataITwin,
			Extensions: dataExtensions,
			Recursive:  dataRecursive,
			Hook:       transferBar("uploading"),
		})
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		return nil
	},
}

var dataDownloadCmd = &cobra.Command{
	Use:   "download <id> <dest>",
	Short: "Download a reality-data container to a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newDataClient()
		if err != nil {
			return err
		}
		opts := realitydata.TransferOptions{
			ITwinID: dataITwin,
			Hook:    transferBar("downloading"),
		}
		if dataTableFile != "" {
			table, err := scene.LoadReferenceTable(dataTableFile)
			if err != nil {
				return err
			}
			opts.Table = table
		}
		resp := client.DownloadRealityData(cmd.Context(), args[0], args[1], opts)
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		return nil
	},
}

var dataListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reality-data",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newDataClient()
		if err != nil {
			return err
		}
		resp := client.List(cmd.Context(), realitydata.ListFilter{
			ITwinID: dataITwin,
			Types:   dataTypesFilter,
			Top:     dataTop,
		})
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tNAME\tMODIFIED")
		for _, rd := range resp.Value.RealityData {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rd.ID, rd.Type, rd.DisplayName, rd.ModifiedDateTime)
		}
		w.Flush()
		if resp.Value.ContinuationToken != "" {
			fmt.Fprintf(os.Stderr, "more results: continuation token %s\n", resp.Value.ContinuationToken)
		}
		return nil
	},
}

var dataRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a reality-data and its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newDataClient()
		if err != nil {
			return err
		}
		resp := client.DeleteData(cmd.Context(), args[0])
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		return nil
	},
}

var dataMvCmd = &cobra.Command{
	Use:   "mv <id>",
	Short: "Move a reality-data to another iTwin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newDataClient()
		if err != nil {
			return err
		}
		resp := client.Move(cmd.Context(), args[0], dataITwin)
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		return nil
	},
}
