// Package services implements the driving ports using the driven
// ports. Services hold the reconciliation logic; adapters stay thin.
package services
