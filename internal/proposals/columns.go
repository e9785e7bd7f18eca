package proposals

// Column names used by the reports. Export column names that need renaming are
// listed in Renames.
const (
	ColDateCreated       = "Date Created"
	ColDayCreated        = "Day Created"
	ColSpeakerEmail      = "Speaker Email"
	ColSpeakerPronouns   = "Speaker Pronouns"
	ColPronouns          = "Pronouns"
	ColLevel             = "Level"
	ColUnderrepresented  = "Underrepresented"
	ColUnderrepGroups    = "Underrep Groups"
	ColTravelAssist      = "Travel Assist"
	ColEmployee          = "Employee"
	ColCompanyNormalized = "Company Normalized"

	DefaultCompanyColumn = "Company"
)

// Rename maps one export column to its report name.
type Rename struct {
	From string
	To   string
}

// Products lists the product tag columns in report order.
var Products = []string{"Consul", "Nomad", "Packer", "Terraform", "Vagrant", "Vault", "Sentinel"}

// Renames is the fixed mapping applied to every export. The product checkboxes
// share one question title in the form builder, so the export repeats it and the
// loader suffixes the repeats (_2.._7).
var Renames = []Rename{
	{From: "HashiCorp Products", To: "Consul"},
	{From: "HashiCorp Products_2", To: "Nomad"},
	{From: "HashiCorp Products_3", To: "Packer"},
	{From: "HashiCorp Products_4", To: "Terraform"},
	{From: "HashiCorp Products_5", To: "Vagrant"},
	{From: "HashiCorp Products_6", To: "Vault"},
	{From: "HashiCorp Products_7", To: "Sentinel"},
	{From: "Are you a member of any groups underrepresented in the tech industry?", To: ColUnderrepresented},
	{From: "Which group(s)?", To: ColUnderrepGroups},
	{From: "Travel assistance needed?", To: ColTravelAssist},
}

// Required lists the columns every report run reads after renaming.
var Required = []string{
	ColDateCreated,
	ColSpeakerPronouns,
	ColLevel,
	"Consul", "Nomad", "Packer", "Terraform", "Vagrant", "Vault", "Sentinel",
	ColUnderrepresented,
	ColUnderrepGroups,
	ColTravelAssist,
}
