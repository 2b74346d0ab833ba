package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reevehq/reeve-go/filter"
	"github.com/reevehq/reeve-go/reeve"
)

var (
	listPage   int
	listAmount int
	filterExpr string

	personFirstname string
	personLastname  string
)

// personCmd groups person management subcommands
var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage persons",
}

var personListCmd = &cobra.Command{
	Use:      "list",
	Short:    "List enrolled persons",
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runPersonList,
}

var personAddCmd = &cobra.Command{
	Use:      "add",
	Short:    "Create a new person",
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runPersonAdd,
}

var personEditCmd = &cobra.Command{
	Use:      "edit <person-id>",
	Short:    "Edit a person",
	Args:     cobra.ExactArgs(1),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runPersonEdit,
}

var personDeleteCmd = &cobra.Command{
	Use:      "delete <person-id>",
	Short:    "Delete a person",
	Args:     cobra.ExactArgs(1),
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runPersonDelete,
}

func init() {
	rootCmd.AddCommand(personCmd)
	personCmd.AddCommand(personListCmd)
	personCmd.AddCommand(personAddCmd)
	personCmd.AddCommand(personEditCmd)
	personCmd.AddCommand(personDeleteCmd)

	personListCmd.Flags().IntVar(&listPage, "page", 0, "page number")
	personListCmd.Flags().IntVar(&listAmount, "amount", 0, "persons per page")
	personListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'Firstname == \"John\"'")

	personAddCmd.Flags().StringVar(&personFirstname, "firstname", "", "first name")
	personAddCmd.Flags().StringVar(&personLastname, "lastname", "", "last name")

	personEditCmd.Flags().StringVar(&personFirstname, "firstname", "", "first name")
	personEditCmd.Flags().StringVar(&personLastname, "lastname", "", "last name")
}

func runPersonList(cmd *cobra.Command, args []string) error {
	// Flags that were not set must not reach the wire.
	var opts reeve.PersonListOptions
	if cmd.Flags().Changed("page") {
		opts.Page = reeve.Int(listPage)
	}
	if cmd.Flags().Changed("amount") {
		opts.Amount = reeve.Int(listAmount)
	}

	resp, err := client.Person.List(cmd.Context(), &opts)
	if err != nil {
		return err
	}

	persons := decodePersons(resp)

	if filterExpr != "" {
		personFilter, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		var matched []reeve.Person
		for _, person := range persons {
			if personFilter.Match(person) {
				matched = append(matched, person)
			}
		}
		persons = matched
	}

	if len(persons) == 0 {
		fmt.Println("No persons found.")
		return nil
	}

	fmt.Printf("Found %d persons:\n", len(persons))
	fmt.Println(strings.Repeat("-", 60))
	for _, person := range persons {
		name := strings.TrimSpace(person.Firstname + " " + person.Lastname)
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("• #%d %s", person.ID, name)
		if person.CreatedAt != nil {
			fmt.Printf("  (enrolled %s)", person.CreatedAt.Format("2006-01-02"))
		}
		fmt.Println()
	}
	return nil
}

func runPersonAdd(cmd *cobra.Command, args []string) error {
	params := personParamsFromFlags(cmd)

	resp, err := client.Person.Add(cmd.Context(), params)
	if err != nil {
		return err
	}

	if m := resp.ResultMap(); m != nil {
		person := reeve.PersonFromMap(m)
		fmt.Printf("Created person #%d\n", person.ID)
	} else {
		fmt.Println("Person created.")
	}
	return nil
}

func runPersonEdit(cmd *cobra.Command, args []string) error {
	personID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid person id %q", args[0])
	}

	params := personParamsFromFlags(cmd)
	if params == nil {
		return fmt.Errorf("nothing to update: set --firstname and/or --lastname")
	}

	if _, err := client.Person.Edit(cmd.Context(), personID, params); err != nil {
		return err
	}

	fmt.Printf("Updated person #%d\n", personID)
	return nil
}

func runPersonDelete(cmd *cobra.Command, args []string) error {
	personID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid person id %q", args[0])
	}

	if _, err := client.Person.Delete(cmd.Context(), personID); err != nil {
		return err
	}

	fmt.Printf("Deleted person #%d\n", personID)
	return nil
}

// personParamsFromFlags keeps the omit-vs-empty distinction: only flags
// the caller actually set are sent.
func personParamsFromFlags(cmd *cobra.Command) *reeve.PersonParams {
	var params reeve.PersonParams
	set := false
	if cmd.Flags().Changed("firstname") {
		params.Firstname = reeve.String(personFirstname)
		set = true
	}
	if cmd.Flags().Changed("lastname") {
		params.Lastname = reeve.String(personLastname)
		set = true
	}
	if !set {
		return nil
	}
	return &params
}

func decodePersons(resp *reeve.APIResponse) []reeve.Person {
	var persons []reeve.Person
	for _, item := range resp.ResultList() {
		if m, ok := item.(map[string]any); ok {
			persons = append(persons, reeve.PersonFromMap(m))
		}
	}
	return persons
}
