// Package schema validates the shape of a parsed module record against the
// fixed crypto-module schema: required fields, enum membership, and the
// syntax of UUID and date fields. It never consults certificate data.
package schema

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cryptomod/cryptomod/internal/domain"
)

const dateLayout = "2006-01-02"

// Check verifies one record and returns every violation found in a single
// pass. All schema findings are errors; a record with any of them is
// invalid, but downstream checks still run so one run surfaces everything.
func Check(rec *domain.ModuleRecord) []domain.Finding {
	c := &checker{module: rec.Name()}

	c.checkHeader(rec)
	c.checkMetadata(rec.Metadata)
	c.checkModule(rec.Spec.Module)
	c.checkValidation(rec.Spec.Validation)
	c.checkUsage(rec.Spec.Usage)

	return c.findings
}

type checker struct {
	module   string
	findings []domain.Finding
}

func (c *checker) add(code, path, message string) {
	c.findings = append(c.findings, domain.Finding{
		Severity: domain.SeverityError,
		Code:     code,
		Category: domain.CategorySchema,
		Message:  message,
		Path:     path,
		Module:   c.module,
	})
}

func (c *checker) missing(path string) {
	c.add(domain.CodeSchemaMissingField, path, fmt.Sprintf("required field %s is missing", path))
}

func (c *checker) checkHeader(rec *domain.ModuleRecord) {
	switch rec.APIVersion {
	case "":
		c.missing("apiVersion")
	case domain.APIVersionV1:
	default:
		c.add(domain.CodeSchemaInvalidValue, "apiVersion",
			fmt.Sprintf("apiVersion %q is not supported (want %s)", rec.APIVersion, domain.APIVersionV1))
	}

	switch rec.Kind {
	case "":
		c.missing("kind")
	case domain.KindCryptoModule:
	default:
		c.add(domain.CodeSchemaInvalidValue, "kind",
			fmt.Sprintf("kind %q is not supported (want %s)", rec.Kind, domain.KindCryptoModule))
	}
}

func (c *checker) checkMetadata(md domain.Metadata) {
	if md.Name == "" {
		c.missing("metadata.name")
	}
	if md.UUID == "" {
		c.missing("metadata.uuid")
	} else if _, err := uuid.Parse(md.UUID); err != nil {
		c.add(domain.CodeSchemaInvalidFormat, "metadata.uuid",
			fmt.Sprintf("metadata.uuid %q is not a valid UUID", md.UUID))
	}
}

func (c *checker) checkModule(m domain.ModuleDescriptor) {
	if m.Name == "" {
		c.missing("spec.module.name")
	}
	if m.Vendor == "" {
		c.missing("spec.module.vendor")
	}
	if m.Type == "" {
		c.missing("spec.module.type")
	} else if !validModuleType(m.Type) {
		c.add(domain.CodeSchemaInvalidEnum, "spec.module.type",
			fmt.Sprintf("spec.module.type %q is not one of hardware, software, firmware, hybrid", m.Type))
	}
}

func (c *checker) checkValidation(v domain.ValidationDescriptor) {
	switch v.Standard {
	case "":
		c.missing("spec.validation.standard")
	case domain.StandardFIPS1402, domain.StandardFIPS1403:
	default:
		c.add(domain.CodeSchemaInvalidEnum, "spec.validation.standard",
			fmt.Sprintf("spec.validation.standard %q is not one of %q, %q",
				v.Standard, domain.StandardFIPS1402, domain.StandardFIPS1403))
	}

	switch {
	case v.CertificateNumber == 0:
		c.missing("spec.validation.certificateNumber")
	case v.CertificateNumber < 0:
		c.add(domain.CodeSchemaInvalidValue, "spec.validation.certificateNumber",
			fmt.Sprintf("spec.validation.certificateNumber must be a positive integer, got %d", v.CertificateNumber))
	}

	switch {
	case v.SecurityLevel == 0:
		c.missing("spec.validation.securityLevel")
	case v.SecurityLevel < 1 || v.SecurityLevel > 4:
		c.add(domain.CodeSchemaInvalidValue, "spec.validation.securityLevel",
			fmt.Sprintf("spec.validation.securityLevel must be 1-4, got %d", v.SecurityLevel))
	}

	c.checkDate("spec.validation.validationDate", v.ValidationDate)
	c.checkDate("spec.validation.sunsetDate", v.SunsetDate)
}

func (c *checker) checkUsage(u domain.UsageDescriptor) {
	if len(u.DataClassification) == 0 {
		c.add(domain.CodeSchemaEmptyList, "spec.usage.dataClassification",
			"spec.usage.dataClassification must list at least one of data-in-transit, data-at-rest, data-in-use")
	} else {
		for _, cls := range u.DataClassification {
			if !validClassification(cls) {
				c.add(domain.CodeSchemaInvalidEnum, "spec.usage.dataClassification",
					fmt.Sprintf("data classification %q is not one of data-in-transit, data-at-rest, data-in-use", cls))
			}
		}
	}

	if u.Location == "" {
		c.missing("spec.usage.location")
	}
	if u.Purpose == "" {
		c.missing("spec.usage.purpose")
	}

	if inh := u.Inheritance; inh != nil {
		if inh.Type == "" {
			c.missing("spec.usage.inheritance.type")
		} else if !validInheritanceType(inh.Type) {
			c.add(domain.CodeSchemaInvalidEnum, "spec.usage.inheritance.type",
				fmt.Sprintf("spec.usage.inheritance.type %q is not one of none, partial, full", inh.Type))
		}
	}
}

// checkDate validates optional ISO-8601 date fields; empty is allowed.
func (c *checker) checkDate(path, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		c.add(domain.CodeSchemaInvalidFormat, path,
			fmt.Sprintf("%s %q is not a valid date (want YYYY-MM-DD)", path, value))
	}
}

func validModuleType(t domain.ModuleType) bool {
	for _, v := range domain.ValidModuleTypes {
		if t == v {
			return true
		}
	}
	return false
}

func validClassification(c string) bool {
	for _, v := range domain.ValidClassifications {
		if c == v {
			return true
		}
	}
	return false
}

func validInheritanceType(t string) bool {
	for _, v := range domain.ValidInheritanceTypes {
		if t == v {
			return true
		}
	}
	return false
}
