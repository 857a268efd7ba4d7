package internal

// note: do not change this
const ApplicationName = "npmsweep"

// DefaultReportFile is where the report is written when no --file value is given.
const DefaultReportFile = "infected_packages_report.json"

// DefaultCatalogFile is the compromised package list read when no --catalog value is given.
const DefaultCatalogFile = "shai-hulud-2-packages.csv"
