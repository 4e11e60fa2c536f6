package testdata

// Value tables for plausible synthetic records.

var firstNames = []string{
	"Anna", "Bo", "Clara", "David", "Eva", "Frederik", "Gitte", "Henrik",
	"Ida", "Jonas", "Karen", "Lars", "Mette", "Niels", "Oda", "Per",
	"Rikke", "Søren", "Tove", "Ulrik",
}

var lastNames = []string{
	"Andersen", "Bruun", "Christensen", "Dahl", "Eriksen", "Friis",
	"Gregersen", "Hansen", "Iversen", "Jensen", "Kjær", "Larsen",
	"Madsen", "Nielsen", "Olsen", "Pedersen", "Rasmussen", "Sørensen",
	"Thomsen", "Winther",
}

var departments = []string{
	"Antibody Discovery", "Bioanalysis", "Cell Line Development",
	"Downstream Processing", "Formulation", "Process Analytics",
	"Protein Sciences", "Quality Control", "Translational Research",
	"Upstream Processing",
}

var cities = []string{
	"Ballerup", "Copenhagen", "Lyngby", "Målev", "Princeton", "Roskilde",
}

var jobTitles = []string{
	"Laboratory Technician", "Research Associate", "Scientist",
	"Senior Scientist", "Principal Scientist", "Department Manager",
	"Automation Engineer", "Data Steward",
}

var productNames = []string{
	"Assay Tracker", "Batch Planner", "Clone Ranker", "Plate Mapper",
	"Sample Router", "Sequence Browser", "Stability Monitor", "Titer Board",
}

var studyTypeKeys = []string{"labbook", "external development", "N/A", "gmp_batch_no"}

var studyTypeInputTypes = []string{"text", "number", "date", "select"}

var parameterIdentifiers = []string{
	"batch_id", "bioreactor_id", "drug_product_id", "id", "mimer_id",
	"ngs_sample_id", "plasmid_prep_id", "plate_well_id", "purification_id",
	"sample_id", "seed_train_id", "single_cell_id", "stability_id",
	"testing_id", "transfection_id",
}
