package seeder

func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{Skills: defaultSkills},
		RolesSeeder{Roles: defaultRoles},
	}
}
