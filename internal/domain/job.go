package domain

// Job 表示一条职位信息。
//
// 职位目前是站点维护的静态数据，没有后台 CRUD，
// 由 /api/jobs 只读输出给前端的职位搜索页。
type Job struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Pay      string `json:"pay"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// JobListings 返回当前在招职位列表
func JobListings() []Job {
	return []Job{
		{ID: 1, Title: "Healthcare Assistant", Location: "North London", Pay: "£14 - £16/hr", Type: "Full-time / Temp", Category: "Care"},
		{ID: 2, Title: "Warehouse Operative", Location: "Dagenham", Pay: "£12.50/hr", Type: "Night Shift", Category: "Logistics"},
		{ID: 3, Title: "Registered Nurse", Location: "Westminster", Pay: "£28 - £35/hr", Type: "Permanent", Category: "Care"},
		{ID: 4, Title: "Forklift Driver (Reach)", Location: "Enfield", Pay: "£15/hr", Type: "Contract", Category: "Logistics"},
		{ID: 5, Title: "Commercial Cleaner", Location: "City of London", Pay: "£11.50/hr", Type: "Part-time", Category: "Cleaning"},
	}
}
