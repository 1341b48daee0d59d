package domain

// ModuleRecord is one declarative cryptographic-module definition, stored as
// a Kubernetes-style YAML document in the inventory repository.
type ModuleRecord struct {
	APIVersion string     `yaml:"apiVersion" json:"apiVersion"`
	Kind       string     `yaml:"kind"       json:"kind"`
	Metadata   Metadata   `yaml:"metadata"   json:"metadata"`
	Spec       ModuleSpec `yaml:"spec"       json:"spec"`

	// SourceFile is the path the record was loaded from, relative to the
	// modules directory. Not part of the document itself.
	SourceFile string `yaml:"-" json:"-"`
}

// APIVersionV1 and KindCryptoModule are the only accepted document headers.
const (
	APIVersionV1     = "fedramp.gov/v1"
	KindCryptoModule = "CryptographicModule"
	KindModuleList   = "CryptographicModuleList"
)

type Metadata struct {
	Name string `yaml:"name" json:"name"`
	UUID string `yaml:"uuid" json:"uuid"`
}

type ModuleSpec struct {
	Module                 ModuleDescriptor     `yaml:"module"     json:"module"`
	Validation             ValidationDescriptor `yaml:"validation" json:"validation"`
	Usage                  UsageDescriptor      `yaml:"usage"      json:"usage"`
	PortProtocolServiceRef []string             `yaml:"portProtocolServiceRef,omitempty" json:"portProtocolServiceRef,omitempty"`
	Suppressions           *SuppressionSet      `yaml:"suppressions,omitempty"           json:"suppressions,omitempty"`
}

// ModuleType identifies the physical embodiment of a module.
type ModuleType string

const (
	ModuleTypeHardware ModuleType = "hardware"
	ModuleTypeSoftware ModuleType = "software"
	ModuleTypeFirmware ModuleType = "firmware"
	ModuleTypeHybrid   ModuleType = "hybrid"
)

// ValidModuleTypes enumerates all recognized module types.
var ValidModuleTypes = []ModuleType{
	ModuleTypeHardware,
	ModuleTypeSoftware,
	ModuleTypeFirmware,
	ModuleTypeHybrid,
}

type ModuleDescriptor struct {
	Name     string     `yaml:"name"               json:"name"`
	Vendor   string     `yaml:"vendor"             json:"vendor"`
	Type     ModuleType `yaml:"type"               json:"type"`
	Versions Versions   `yaml:"versions,omitempty" json:"versions,omitempty"`
}

type Versions struct {
	Software string `yaml:"software,omitempty" json:"software,omitempty"`
	Hardware string `yaml:"hardware,omitempty" json:"hardware,omitempty"`
	Firmware string `yaml:"firmware,omitempty" json:"firmware,omitempty"`
}

// The two supported validation standard generations, newest last.
const (
	StandardFIPS1402 = "FIPS 140-2"
	StandardFIPS1403 = "FIPS 140-3"
)

// ValidStandards enumerates the accepted values of spec.validation.standard.
var ValidStandards = []string{StandardFIPS1402, StandardFIPS1403}

type ValidationDescriptor struct {
	Standard          string   `yaml:"standard"                 json:"standard"`
	CertificateNumber int      `yaml:"certificateNumber"        json:"certificateNumber"`
	SecurityLevel     int      `yaml:"securityLevel"            json:"securityLevel"`
	ValidationDate    string   `yaml:"validationDate,omitempty" json:"validationDate,omitempty"`
	SunsetDate        string   `yaml:"sunsetDate,omitempty"     json:"sunsetDate,omitempty"`
	Algorithms        []string `yaml:"algorithms,omitempty"     json:"algorithms,omitempty"`
	Caveat            string   `yaml:"caveat,omitempty"         json:"caveat,omitempty"`
}

// Data classification tags: what kind of data the module protects.
const (
	ClassificationDataInTransit = "data-in-transit"
	ClassificationDataAtRest    = "data-at-rest"
	ClassificationDataInUse     = "data-in-use"
)

// ValidClassifications enumerates the accepted dataClassification values.
var ValidClassifications = []string{
	ClassificationDataInTransit,
	ClassificationDataAtRest,
	ClassificationDataInUse,
}

type UsageDescriptor struct {
	DataClassification []string     `yaml:"dataClassification"    json:"dataClassification"`
	Location           string       `yaml:"location"              json:"location"`
	Purpose            string       `yaml:"purpose"               json:"purpose"`
	Inheritance        *Inheritance `yaml:"inheritance,omitempty" json:"inheritance,omitempty"`
}

// Inheritance type values.
const (
	InheritanceNone    = "none"
	InheritancePartial = "partial"
	InheritanceFull    = "full"
)

// ValidInheritanceTypes enumerates the accepted inheritance.type values.
var ValidInheritanceTypes = []string{InheritanceNone, InheritancePartial, InheritanceFull}

// Inheritance describes a module provided (wholly or partly) by an
// underlying authorized service.
type Inheritance struct {
	Type          string `yaml:"type"                    json:"type"`
	Provider      string `yaml:"provider,omitempty"      json:"provider,omitempty"`
	Documentation string `yaml:"documentation,omitempty" json:"documentation,omitempty"`
}

// SuppressionSet lists warning rule codes the record author asserts are
// acceptable, with a justification for auditors. It never applies to errors.
type SuppressionSet struct {
	Rules         []string `yaml:"rules"         json:"rules"`
	Justification string   `yaml:"justification" json:"justification"`
}

// Suppresses reports whether the given rule code is annotated as suppressed.
func (s *SuppressionSet) Suppresses(code string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Rules {
		if r == code {
			return true
		}
	}
	return false
}

// Name returns the record's metadata name, or "unknown" for records that
// could not be named (mirrors how unnamed records appear in reports).
func (r *ModuleRecord) Name() string {
	if r == nil || r.Metadata.Name == "" {
		return "unknown"
	}
	return r.Metadata.Name
}
