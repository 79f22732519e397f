package demorequest

// Fixed reference catalogs. The accessors return copies so callers may mutate
// their result freely.

var industries = []Industry{
	{ID: "technology", Name: "Technology", Icon: "💻"},
	{ID: "healthcare", Name: "Healthcare", Icon: "🏥"},
	{ID: "finance", Name: "Finance & Banking", Icon: "🏦"},
	{ID: "retail", Name: "Retail & E-commerce", Icon: "🛒"},
	{ID: "manufacturing", Name: "Manufacturing", Icon: "🏭"},
	{ID: "education", Name: "Education", Icon: "📚"},
	{ID: "consulting", Name: "Consulting", Icon: "💼"},
	{ID: "real-estate", Name: "Real Estate", Icon: "🏢"},
	{ID: "hospitality", Name: "Hospitality", Icon: "🏨"},
	{ID: "other", Name: "Other", Icon: "📋"},
}

var companySizes = []CompanySize{
	{ID: "1-50", Label: "Startup", Range: "1-50 employees"},
	{ID: "51-200", Label: "Small Business", Range: "51-200 employees"},
	{ID: "201-500", Label: "Mid-Market", Range: "201-500 employees"},
	{ID: "501-1000", Label: "Large", Range: "501-1000 employees"},
	{ID: "1000+", Label: "Enterprise", Range: "1000+ employees"},
}

var timeSlots = []TimeSlot{
	{ID: "9-10am", Label: "9:00 AM - 10:00 AM", StartTime: "09:00", EndTime: "10:00", Available: true},
	{ID: "10-11am", Label: "10:00 AM - 11:00 AM", StartTime: "10:00", EndTime: "11:00", Available: true},
	{ID: "11-12pm", Label: "11:00 AM - 12:00 PM", StartTime: "11:00", EndTime: "12:00", Available: false},
	{ID: "1-2pm", Label: "1:00 PM - 2:00 PM", StartTime: "13:00", EndTime: "14:00", Available: true},
	{ID: "2-3pm", Label: "2:00 PM - 3:00 PM", StartTime: "14:00", EndTime: "15:00", Available: true},
	{ID: "3-4pm", Label: "3:00 PM - 4:00 PM", StartTime: "15:00", EndTime: "16:00", Available: true},
	{ID: "4-5pm", Label: "4:00 PM - 5:00 PM", StartTime: "16:00", EndTime: "17:00", Available: false},
}

// bookedProbability is the chance an available slot shows as taken when a
// specific date is requested.
const bookedProbability = 0.3

// Industries returns the industry catalog.
func Industries() []Industry {
	return append([]Industry(nil), industries...)
}

// CompanySizes returns the company size catalog.
func CompanySizes() []CompanySize {
	return append([]CompanySize(nil), companySizes...)
}

// TimeSlots returns the base time slot catalog.
func TimeSlots() []TimeSlot {
	return append([]TimeSlot(nil), timeSlots...)
}

// IndustryByID looks up an industry.
func IndustryByID(id string) (Industry, bool) {
	for _, ind := range industries {
		if ind.ID == id {
			return ind, true
		}
	}
	return Industry{}, false
}

// CompanySizeByID looks up a company size band.
func CompanySizeByID(id string) (CompanySize, bool) {
	for _, size := range companySizes {
		if size.ID == id {
			return size, true
		}
	}
	return CompanySize{}, false
}

// TimeSlotsForDate returns the catalog with random bookings applied. Slots are
// only ever downgraded to unavailable.
func TimeSlotsForDate(rnd RandomSource) []TimeSlot {
	slots := TimeSlots()
	for i := range slots {
		slots[i].Available = slots[i].Available && rnd.Float64() > bookedProbability
	}
	return slots
}
