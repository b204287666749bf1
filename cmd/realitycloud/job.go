package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/realitycloud/realitycloud/pkg/jobs"
	"github.com/realitycloud/realitycloud/pkg/specs"
)

// job flags
var (
	jobITwin    string
	jobName     string
	jobSpecFile string
	jobService  string
	costInputs  string
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Submit and track reality-modeling and reality-analysis jobs",
}

func init() {
	jobSubmitCmd.Flags().StringVar(&jobITwin, "itwin", "", "iTwin id (required)")
	jobSubmitCmd.Flags().StringVar(&jobName, "name", "", "job name")
	jobSubmitCmd.Flags().StringVar(&jobSpecFile, "spec", "", "JSON file with {type, specifications} (required)")
	jobSubmitCmd.MarkFlagRequired("itwin")
	jobSubmitCmd.MarkFlagRequired("spec")

	for _, c := range []*cobra.Command{jobStatusCmd, jobMessagesCmd, jobCancelCmd, jobWatchCmd} {
		c.Flags().StringVar(&jobService, "service", "", "service: reality-modeling or reality-analysis (required)")
		c.MarkFlagRequired("service")
	}

	jobCostCmd.Flags().StringVar(&jobSpecFile, "spec", "", "JSON file with {type, costInput} (required)")
	jobCostCmd.MarkFlagRequired("spec")

	jobCmd.AddCommand(jobSubmitCmd, jobStatusCmd, jobMessagesCmd, jobCancelCmd, jobCostCmd, jobWatchCmd)
}

func parseService() (specs.Service, error) {
	s := specs.Service(jobService)
	switch s {
	case specs.ServiceModeling, specs.ServiceAnalysis:
		return s, nil
	}
	return "", fmt.Errorf("unknown service %q", jobService)
}

// specFile is the on-disk shape fed to submit and cost commands.
type specFile struct {
	Type           specs.JobType   `json:"type"`
	Specifications json.RawMessage `json:"specifications"`
	CostInput      jobs.CostInput  `json:"costInput"`
}

func readSpecFile() (*specFile, error) {
	data, err := os.ReadFile(jobSpecFile)
	if err != nil {
		return nil, err
	}
	var f specFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", jobSpecFile, err)
	}
	return &f, nil
}

func printJob(j jobs.Job) {
	fmt.Printf("id:\t%s\n", j.ID)
	fmt.Printf("type:\t%s\n", j.Type)
	fmt.Printf("state:\t%s\n", j.State)
	if j.Execution != nil && j.Execution.EstimatedUnits > 0 {
		fmt.Printf("units:\t%.2f\n", j.Execution.EstimatedUnits)
	}
	if j.Specifications != nil {
		if out, err := json.MarshalIndent(j.Specifications, "", "  "); err == nil {
			fmt.Printf("specifications:\n%s\n", out)
		}
	}
}

var jobSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a job described by a specification file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := readSpecFile()
		if err != nil {
			return err
		}
		spec, err := specs.UnmarshalCreate(f.Type, f.Specifications)
		if err != nil {
			return err
		}
		client, err := newJobClient()
		if err != nil {
			return err
		}
		resp := client.Submit(cmd.Context(), jobs.Create{
			Name:           jobName,
			ITwinID:        jobITwin,
			Specifications: spec,
		})
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		fmt.Println(resp.Value.ID)
		return nil
	},
}

var jobStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show a job's state and realized outputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := parseService()
		if err != nil {
			return err
		}
		client, err := newJobClient()
		if err != nil {
			return err
		}
		resp := client.Get(cmd.Context(), args[0], service)
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		printJob(resp.Value)
		return nil
	},
}

var jobMessagesCmd = &cobra.Command{
	Use:   "messages <id>",
	Short: "Show a job's errors and warnings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := parseService()
		if err != nil {
			return err
		}
		client, err := newJobClient()
		if err != nil {
			return err
		}
		resp := client.GetMessages(cmd.Context(), args[0], service)
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		for _, m := range resp.Value.Errors {
			fmt.Printf("error [%s] %s\n", m.Code, m.Message)
		}
		for _, m := range resp.Value.Warnings {
			fmt.Printf("warning [%s] %s\n", m.Code, m.Message)
		}
		return nil
	},
}

var jobCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a running job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := parseService()
		if err != nil {
			return err
		}
		client, err := newJobClient()
		if err != nil {
			return err
		}
		resp := client.Cancel(cmd.Context(), args[0], service)
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		fmt.Printf("state: %s\n", resp.Value.State)
		return nil
	},
}

var jobCostCmd = &cobra.Command{
	Use:   "cost",
	Short: "Estimate the unit cost of a prospective job",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := readSpecFile()
		if err != nil {
			return err
		}
		client, err := newJobClient()
		if err != nil {
			return err
		}
		resp := client.EstimateCost(cmd.Context(), f.Type, f.CostInput)
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		fmt.Printf("%.2f units\n", resp.Value.EstimatedUnits)
		return nil
	},
}

var jobWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Poll a job until it reaches a terminal state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := parseService()
		if err != nil {
			return err
		}
		client, err := newJobClient()
		if err != nil {
			return err
		}
		monitor := client.NewMonitor()
		monitor.OnProgress = func(p jobs.Progress) {
			fmt.Fprintf(os.Stderr, "\r%s %.0f%%", p.State, p.Percentage)
		}
		resp := monitor.Wait(cmd.Context(), args[0], service)
		fmt.Fprintln(os.Stderr)
		if !resp.Ok() {
			return respErr(resp.StatusCode, resp.Err)
		}
		printJob(resp.Value)
		return nil
	},
}
