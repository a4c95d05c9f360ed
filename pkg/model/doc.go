// Package model defines the field definitions HR staff compose into offboarding
// questionnaires. A Field carries a shared base record (name, labels, mandatory
// and visibility flags) plus a Config variant selected by its FieldType, so
// options only exist on option-bearing types and date bounds only on dates.
// Fields serialise to the flat JSON objects found in form-config.json exports;
// keys that belong to another type's variant are ignored on decode.
package model
