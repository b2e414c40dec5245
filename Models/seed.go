package Models

// MockStaff is the staff roster the service is seeded with.
var MockStaff = []Staff{
	{ID: "s1", Name: "Dr. Chinedu Okafor", Cadre: CadreDoctor, Status: "Active", Email: "chinedu.o@carebridge.ng", State: "Lagos"},
	{ID: "s2", Name: "Amina Yusuf", Cadre: CadreNurse, Status: "Active", Email: "amina.y@carebridge.ng", State: "FCT Abuja"},
	{ID: "s3", Name: "Olawale Adenuga", Cadre: CadreCarer, Status: "Pending Verification", Email: "olawale.a@carebridge.ng", State: "Ogun"},
}

var MockClients = []Client{
	{ID: "c1", Name: "Chief Robert Thompson", Email: "robert.t@yahoo.com", ServiceType: "Live-in Care", Status: "Active", State: "Lagos"},
	{ID: "c2", Name: "Alhaji Musa Chen", Email: "musa.c@gmail.com", ServiceType: "Daily Visit", Status: "Onboarding", State: "Kano"},
	{ID: "c3", Name: "Mrs. Funke Akindele", Email: "funke.a@hotmail.com", ServiceType: "Night Care", Status: "Active", State: "Oyo"},
	{ID: "c4", Name: "Dr. Emmanuel Eke", Email: "e.eke@med.ng", ServiceType: "Live-in Care", Status: "Active", State: "Rivers"},
	{ID: "c5", Name: "Madam Elizabeth Solanke", Email: "lizzy.s@gmail.com", ServiceType: "Daily Visit", Status: "Active", State: "Lagos"},
}

// MockTasks returns the demo roster scheduled on day. Staff s8 is deliberately
// absent from MockStaff so the unknown-staff placeholder path is exercised.
func MockTasks(day string) []Task {
	return []Task{
		{ID: "t-1", StaffID: "s1", ClientID: "c1", Date: day, Time: "08:00", Title: "Morning Vitals Check", Description: "Check BP, Heart Rate and Respiratory Rate.", Status: TaskYetToStart},
		{ID: "t-2", StaffID: "s1", ClientID: "c1", Date: day, Time: "09:30", Title: "Medication Administration", Description: "Administer prescribed neuro-protective agents.", Status: TaskYetToStart},
		{ID: "t-3", StaffID: "s8", ClientID: "c1", Date: day, Time: "11:00", Title: "Mobility Support Session", Description: "Assisted walking around the garden for Chief Thompson.", Status: TaskYetToStart},
		{ID: "t-4", StaffID: "s8", ClientID: "c5", Date: day, Time: "14:00", Title: "Post-Op Physical Therapy", Description: "Assisting Madam Solanke with lower limb recovery exercises.", Status: TaskYetToStart},
	}
}
